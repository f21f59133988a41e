package service

import (
	"context"

	"eventhub/internal/model"
	"eventhub/internal/repository"
	"eventhub/pkg/clock"
)

type EventService interface {
	Create(ctx context.Context, userID int, event *model.Event) (*model.Event, error)
	List(ctx context.Context, userID int, filter model.StatusFilter) ([]*model.EventSummary, error)
	GetByID(ctx context.Context, userID, id int) (*model.Event, error)
	// GetBySlug 公開查詢，不做擁有者或 draft 過濾
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	Update(ctx context.Context, userID, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, userID, id int) error
}

type EventServiceImpl struct {
	repo    repository.EventRepository
	baseURL string
	clock   clock.Clock
}

func NewEventService(repo repository.EventRepository, baseURL string, clk clock.Clock) EventService {
	return &EventServiceImpl{repo: repo, baseURL: baseURL, clock: clk}
}

func (s *EventServiceImpl) Create(ctx context.Context, userID int, event *model.Event) (*model.Event, error) {
	event.UserID = userID
	// slug 與 event_url 只在建立時計算，之後改名也不重算
	event.EventURL = model.BuildEventURL(s.baseURL, model.Slugify(event.Name))

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	created.Status = created.StatusAt(s.clock.Now())
	return created, nil
}

func (s *EventServiceImpl) List(ctx context.Context, userID int, filter model.StatusFilter) ([]*model.EventSummary, error) {
	events, err := s.repo.ListByOwner(ctx, userID, filter, s.clock.Now())
	if err != nil {
		return nil, err
	}

	// 顯示用的狀態與查詢過濾各取一次當前時間
	now := s.clock.Now()
	summaries := make([]*model.EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, &model.EventSummary{
			ID:                 event.ID,
			Name:               event.Name,
			StartDate:          event.StartDate,
			Type:               event.Type,
			AttendanceCapacity: event.AttendanceCapacity,
			Status:             event.StatusAt(now),
		})
	}
	return summaries, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, userID, id int) (*model.Event, error) {
	event, err := s.repo.FindByOwnerAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	event.Status = event.StatusAt(s.clock.Now())
	return event, nil
}

func (s *EventServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	event.Status = event.StatusAt(s.clock.Now())
	return event, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, userID, id int, params model.UpdateEventParams) (*model.Event, error) {
	// 先以擁有者範圍查詢，查無資料與非擁有者得到同一個 404
	event, err := s.repo.FindByOwnerAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.IsEmpty() {
		event.Status = event.StatusAt(s.clock.Now())
		return event, nil
	}

	updated, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}
	updated.Status = updated.StatusAt(s.clock.Now())
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}
