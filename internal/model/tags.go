package model

import "encoding/json"

// Tags 活動標籤集合，儲存時序列化為 JSON 文字
type Tags []string

// Encode 序列化為儲存用的 JSON 文字，nil 視為空集合
func (t Tags) Encode() (string, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTags 反序列化儲存的 JSON 文字，空字串視為空集合
func DecodeTags(s string) (Tags, error) {
	if s == "" {
		return Tags{}, nil
	}
	var t Tags
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return nil, err
	}
	return t, nil
}
