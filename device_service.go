package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeviceService struct {
	db *gorm.DB
}

func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// find returns the device row for id, or nil when none exists.
func (s *DeviceService) find(deviceID string) (*Device, error) {
	var device Device
	tx := s.db.Where("device_id = ?", deviceID).First(&device)
	if tx.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &device, nil
}

// Register handles POST /api/v1/devices. A whitespace-only nickname is
// rejected before any store call is made.
func (s *DeviceService) Register(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "닉네임을 입력하세요."})
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "닉네임을 입력하세요."})
		return
	}

	device := Device{
		DeviceID:  requestDeviceID(c),
		Nickname:  nickname,
		CreatedAt: nowUTC(),
	}
	if err := s.db.Create(&device).Error; err != nil {
		log.Printf("Failed to register device: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "등록에 실패했습니다."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"state":    StateRegistered,
		"nickname": nickname,
	})
}

// UpdateNickname handles PUT /api/v1/devices/nickname. The nickname is the
// only device attribute editable after registration; check-in content never
// is.
func (s *DeviceService) UpdateNickname(c *gin.Context) {
	var req UpdateNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "닉네임을 입력하세요."})
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "닉네임을 입력하세요."})
		return
	}

	tx := s.db.Model(&Device{}).Where("device_id = ?", requestDeviceID(c)).Update("nickname", nickname)
	if tx.Error != nil {
		log.Printf("Failed to update nickname: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "닉네임 변경에 실패했습니다."})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"state": StateUnregistered, "error": "등록된 기기가 아닙니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":    StateRegistered,
		"nickname": nickname,
	})
}
