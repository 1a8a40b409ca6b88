package main

import "time"

// Device represents a registered browser/device in the devices table.
// device_id is the fingerprint-derived identifier supplied by the client;
// isadmin is set out-of-band directly in the store, never through the API.
type Device struct {
	DeviceID  string    `json:"device_id" gorm:"primaryKey;size:100"`
	Nickname  string    `json:"nickname" gorm:"not null"`
	IsAdmin   bool      `json:"isadmin" gorm:"column:isadmin;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Device) TableName() string { return "devices" }

// CheckinRecord represents one daily submission in the daily_checkin table.
// At most one row exists per (device_id, date); the store enforces this with
// a unique index and the submit path inserts with ON CONFLICT DO NOTHING.
type CheckinRecord struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	DeviceID         string    `json:"device_id" gorm:"index;size:100;not null"`
	Date             string    `json:"date" gorm:"size:10;not null"`
	PainValue        string    `json:"pain_value" gorm:"size:3;not null"`
	PainDetail       string    `json:"pain_detail"`
	SuggestionValue  string    `json:"suggestion_value" gorm:"size:3;not null"`
	SuggestionDetail string    `json:"suggestion_detail"`
	QuestionValue    string    `json:"question_value" gorm:"size:3;not null"`
	QuestionDetail   string    `json:"question_detail"`
	CreatedAt        time.Time `json:"created_at"`
}

func (CheckinRecord) TableName() string { return "daily_checkin" }

// Answer is one yes/no pair with its optional free-text detail.
// Detail is meaningless when Value is "no" and is cleared on normalization.
type Answer struct {
	Value  string `json:"value" binding:"required,oneof=yes no"`
	Detail string `json:"detail"`
}

// RegisterDeviceRequest is the payload for device registration
type RegisterDeviceRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// UpdateNicknameRequest is the payload for the nickname side-channel edit
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// SubmitCheckinRequest is the payload for the daily check-in submission
type SubmitCheckinRequest struct {
	Pain       Answer `json:"pain" binding:"required"`
	Suggestion Answer `json:"suggestion" binding:"required"`
	Question   Answer `json:"question" binding:"required"`
}

// AnswerView is an answer plus its read-only display string, shared by the
// check-in already-submitted view and the admin listing.
type AnswerView struct {
	Value   string `json:"value"`
	Detail  string `json:"detail"`
	Display string `json:"display"`
}

// CheckinView is the read-only rendering of one submitted record
type CheckinView struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	Pain       AnswerView `json:"pain"`
	Suggestion AnswerView `json:"suggestion"`
	Question   AnswerView `json:"question"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SessionResponse is the resolved flow state for a device in one dispatch
type SessionResponse struct {
	State    FlowState    `json:"state"`
	Nickname string       `json:"nickname,omitempty"`
	Today    string       `json:"today,omitempty"`
	Checkin  *CheckinView `json:"checkin,omitempty"`
}

// AdminCheckinItem is one record in the admin listing, expanded with the
// submitting device's nickname.
type AdminCheckinItem struct {
	ID         string     `json:"id"`
	Nickname   string     `json:"nickname"`
	Pain       AnswerView `json:"pain"`
	Suggestion AnswerView `json:"suggestion"`
	Question   AnswerView `json:"question"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AdminSummary is the yes/no aggregate over a day's records, partitioned on
// pain_value.
type AdminSummary struct {
	Yes        int64 `json:"yes"`
	No         int64 `json:"no"`
	Percentage int   `json:"percentage"`
}
