package main

import (
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminService struct {
	db      *gorm.DB
	devices *DeviceService
	loc     *time.Location
}

func NewAdminService(db *gorm.DB, devices *DeviceService, loc *time.Location) *AdminService {
	return &AdminService{db: db, devices: devices, loc: loc}
}

// RequireAdmin gates the admin route group on the device's isadmin flag.
// Unauthorized devices get the fixed denial message and no further query
// runs on their behalf.
func (s *AdminService) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		device, err := s.devices.find(requestDeviceID(c))
		if err != nil {
			log.Printf("Admin gate lookup error: %v", err)
		}
		if device == nil || !device.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"state": StateUnauthorized,
				"error": "접근 권한이 없습니다.",
			})
			return
		}
		c.Next()
	}
}

// ListCheckins handles GET /api/v1/admin/checkins?date=YYYY-MM-DD.
// Date defaults to today; every date change on the client re-runs this query.
func (s *AdminService) ListCheckins(c *gin.Context) {
	date := c.DefaultQuery("date", localDate(nowUTC(), s.loc))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "날짜 형식이 올바르지 않습니다."})
		return
	}

	type row struct {
		ID               string
		Nickname         string
		PainValue        string
		PainDetail       string
		SuggestionValue  string
		SuggestionDetail string
		QuestionValue    string
		QuestionDetail   string
		CreatedAt        time.Time
	}
	var rows []row
	err := s.db.Raw(`SELECT c.id, COALESCE(d.nickname, '') AS nickname,
            c.pain_value, c.pain_detail,
            c.suggestion_value, c.suggestion_detail,
            c.question_value, c.question_detail,
            c.created_at
        FROM daily_checkin c
        LEFT JOIN devices d ON d.device_id = c.device_id
        WHERE c.date = ?
        ORDER BY c.created_at DESC`, date).Scan(&rows).Error
	if err != nil {
		log.Printf("Failed to fetch check-ins for %s: %v", date, err)
		rows = nil
	}

	items := make([]AdminCheckinItem, 0, len(rows))
	var yes, no int64
	for _, r := range rows {
		if r.PainValue == "yes" {
			yes++
		} else {
			no++
		}
		items = append(items, AdminCheckinItem{
			ID:         r.ID,
			Nickname:   r.Nickname,
			Pain:       answerView(TopicPain, r.PainValue, r.PainDetail),
			Suggestion: answerView(TopicSuggestion, r.SuggestionValue, r.SuggestionDetail),
			Question:   answerView(TopicQuestion, r.QuestionValue, r.QuestionDetail),
			CreatedAt:  r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"items":   items,
		"total":   len(items),
		"summary": summarize(yes, no),
	})
}

// summarize partitions a day's records on pain_value.
func summarize(yes, no int64) AdminSummary {
	return AdminSummary{Yes: yes, No: no, Percentage: roundPercentage(yes, no)}
}

// roundPercentage is round(yes/(yes+no)*100), with 0 for an empty day.
func roundPercentage(yes, no int64) int {
	total := yes + no
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(yes) / float64(total) * 100))
}
