package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeLayout 活動日期的固定格式
const TimeLayout = "2006-01-02 15:04:05"

// EventStatus 活動狀態類型（由 end_date 與當前時間推導，不以儲存值為準）
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusCompleted EventStatus = "completed"
)

// StatusFilter 列表查詢的狀態過濾條件
type StatusFilter string

const (
	StatusFilterNone      StatusFilter = ""
	StatusFilterCompleted StatusFilter = "completed"
	StatusFilterUpcoming  StatusFilter = "upcoming"
)

// ParseStatusFilter 解析 query string 的 status 參數，未知值視為不過濾
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case StatusFilterCompleted:
		return StatusFilterCompleted
	case StatusFilterUpcoming:
		return StatusFilterUpcoming
	}
	return StatusFilterNone
}

// DateTime 以 "YYYY-MM-DD HH:MM:SS" 格式序列化的時間
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime 解析固定格式的時間字串
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Time: t}, nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(TimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(TimeLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into DateTime", src)
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

// Event 活動模型
type Event struct {
	ID                 int         `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	Type               string      `json:"type" db:"type"`
	Description        string      `json:"description" db:"description"`
	Tags               Tags        `json:"tags" db:"tags"`
	StartDate          DateTime    `json:"start_date" db:"start_date"`
	EndDate            DateTime    `json:"end_date" db:"end_date"`
	LocationLink       string      `json:"location_link" db:"location_link"`
	AttendanceCapacity *int        `json:"attendance_capacity,omitempty" db:"attendance_capacity"`
	TicketPricing      *string     `json:"ticket_pricing,omitempty" db:"ticket_pricing"`
	TicketPrice        *float64    `json:"ticket_price,omitempty" db:"ticket_price"`
	Draft              *bool       `json:"draft,omitempty" db:"draft"`
	EventURL           string      `json:"event_url" db:"event_url"`
	Status             EventStatus `json:"status,omitempty" db:"-"`
	UserID             int         `json:"user_id" db:"user_id"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// StatusAt 依據 end_date 與給定時刻推導活動狀態，嚴格晚於 end_date 才算 completed
func (e *Event) StatusAt(now time.Time) EventStatus {
	if now.After(e.EndDate.Time) {
		return EventStatusCompleted
	}
	return EventStatusUpcoming
}

// EventSummary 列表回應的活動摘要
type EventSummary struct {
	ID                 int         `json:"id"`
	Name               string      `json:"name"`
	StartDate          DateTime    `json:"start_date"`
	Type               string      `json:"type"`
	AttendanceCapacity *int        `json:"attendance_capacity"`
	Status             EventStatus `json:"status"`
}

// UpdateEventParams 部分更新參數，nil 欄位保持原值
type UpdateEventParams struct {
	Name               *string
	Type               *string
	Description        *string
	Tags               *Tags
	StartDate          *DateTime
	EndDate            *DateTime
	LocationLink       *string
	AttendanceCapacity *int
	TicketPricing      *string
	TicketPrice        *float64
	Status             *string
}

// IsEmpty 是否沒有任何欄位要更新
func (p UpdateEventParams) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Description == nil &&
		p.Tags == nil && p.StartDate == nil && p.EndDate == nil &&
		p.LocationLink == nil && p.AttendanceCapacity == nil &&
		p.TicketPricing == nil && p.TicketPrice == nil && p.Status == nil
}

// Slugify 將活動名稱轉成 slug：轉小寫、空白換連字號，不做其他正規化
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// BuildEventURL 產生活動公開網址，建立後不再重算
func BuildEventURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/api/v1/event/%s", baseURL, slug)
}
