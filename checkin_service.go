package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckinService struct {
	db      *gorm.DB
	devices *DeviceService
	loc     *time.Location
}

func NewCheckinService(db *gorm.DB, devices *DeviceService, loc *time.Location) *CheckinService {
	return &CheckinService{db: db, devices: devices, loc: loc}
}

func (s *CheckinService) today() string {
	return localDate(nowUTC(), s.loc)
}

// findForDate returns the check-in record for (deviceID, date), or nil when
// none exists.
func (s *CheckinService) findForDate(deviceID, date string) (*CheckinRecord, error) {
	var rec CheckinRecord
	tx := s.db.Where("device_id = ? AND date = ?", deviceID, date).First(&rec)
	if tx.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rec, nil
}

// Session handles GET /api/v1/session: one dispatch resolving the full flow
// state for this device. Lookup failures degrade to "no data" so the client
// always receives a renderable state.
func (s *CheckinService) Session(c *gin.Context) {
	deviceID := requestDeviceID(c)
	today := s.today()

	device, err := s.devices.find(deviceID)
	if err != nil {
		log.Printf("Device lookup error: %v", err)
	}
	if device == nil {
		c.JSON(http.StatusOK, SessionResponse{State: StateUnregistered, Today: today})
		return
	}

	rec, err := s.findForDate(deviceID, today)
	if err != nil {
		log.Printf("Check-in lookup error: %v", err)
	}
	if rec == nil {
		c.JSON(http.StatusOK, SessionResponse{State: StateAnswering, Nickname: device.Nickname, Today: today})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		State:    StateAlreadySubmitted,
		Nickname: device.Nickname,
		Today:    today,
		Checkin:  checkinView(rec),
	})
}

// Today handles GET /api/v1/checkin/today: answering with blank defaults, or
// the read-only view of the record already submitted today.
func (s *CheckinService) Today(c *gin.Context) {
	deviceID := requestDeviceID(c)
	today := s.today()

	rec, err := s.findForDate(deviceID, today)
	if err != nil {
		log.Printf("Check-in lookup error: %v", err)
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{
			"state":      StateAnswering,
			"today":      today,
			"pain":       Answer{Value: "no"},
			"suggestion": Answer{Value: "no"},
			"question":   Answer{Value: "no"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   StateAlreadySubmitted,
		"today":   today,
		"checkin": checkinView(rec),
	})
}

// Submit handles POST /api/v1/checkin. The store's unique index on
// (device_id, date) closes the check-then-act race: a conflicting insert
// affects zero rows and is answered with the existing record instead of an
// error or a duplicate.
func (s *CheckinService) Submit(c *gin.Context) {
	var req SubmitCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pain := normalizeAnswer(req.Pain)
	suggestion := normalizeAnswer(req.Suggestion)
	question := normalizeAnswer(req.Question)

	deviceID := requestDeviceID(c)
	today := s.today()

	rec := CheckinRecord{
		ID:               uuid.NewString(),
		DeviceID:         deviceID,
		Date:             today,
		PainValue:        pain.Value,
		PainDetail:       pain.Detail,
		SuggestionValue:  suggestion.Value,
		SuggestionDetail: suggestion.Detail,
		QuestionValue:    question.Value,
		QuestionDetail:   question.Detail,
	}

	// created_at is store-assigned
	sql := `INSERT INTO daily_checkin (id, device_id, date, pain_value, pain_detail, suggestion_value, suggestion_detail, question_value, question_detail)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT (device_id, date) DO NOTHING`
	tx := s.db.Exec(sql, rec.ID, rec.DeviceID, rec.Date,
		rec.PainValue, rec.PainDetail,
		rec.SuggestionValue, rec.SuggestionDetail,
		rec.QuestionValue, rec.QuestionDetail)
	if tx.Error != nil {
		log.Printf("Failed to insert check-in: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "제출에 실패했어요."})
		return
	}

	if tx.RowsAffected == 0 {
		// A record for today already exists; answer with it
		existing, err := s.findForDate(deviceID, today)
		if err != nil || existing == nil {
			log.Printf("Failed to load existing check-in after conflict: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "제출에 실패했어요."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state":   StateAlreadySubmitted,
			"checkin": checkinView(existing),
		})
		return
	}

	// Echo the just-submitted answers so the client can render the
	// read-only view without a re-fetch
	rec.CreatedAt = nowUTC()
	c.JSON(http.StatusCreated, gin.H{
		"state":   StateAlreadySubmitted,
		"checkin": checkinView(&rec),
	})
}
