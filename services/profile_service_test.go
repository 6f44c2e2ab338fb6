package services

import (
	"errors"
	"testing"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

func profileTestConfig(cap int) *config.Config {
	cfg := &config.Config{}
	cfg.Recommender.ProfileCap = cap
	return cfg
}

func resetProfileRegistry() {
	profileMu.Lock()
	defer profileMu.Unlock()
	profiles = make(map[string]models.UserProfile)
	profileOrder = make([]string, 0)
}

func TestSaveUserProfile_GeneratesUniqueIDs(t *testing.T) {
	resetProfileRegistry()
	cfg := profileTestConfig(100)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := SaveUserProfile(cfg, testProfile())
		if len(id) != utils.UserIDLength {
			t.Fatalf("Expected %d-char user id, got '%s'", utils.UserIDLength, id)
		}
		if seen[id] {
			t.Fatalf("Duplicate user id generated: %s", id)
		}
		seen[id] = true
	}

	if ProfileCount() != 50 {
		t.Errorf("Expected 50 stored profiles, got %d", ProfileCount())
	}
}

func TestGetUserProfile_ReturnsCopy(t *testing.T) {
	resetProfileRegistry()
	cfg := profileTestConfig(100)

	id := SaveUserProfile(cfg, testProfile())

	first, err := GetUserProfile(id)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	first.Age = 99 // 修改返回值不应影响缓存

	second, err := GetUserProfile(id)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.Age == 99 {
		t.Error("Stored profile was mutated through the returned copy")
	}
}

func TestGetUserProfile_NotFound(t *testing.T) {
	resetProfileRegistry()

	_, err := GetUserProfile("missing12345")
	if !errors.Is(err, utils.ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestSaveUserProfile_EvictsOldestOverCap(t *testing.T) {
	resetProfileRegistry()
	cfg := profileTestConfig(3)

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, SaveUserProfile(cfg, testProfile()))
	}

	if ProfileCount() != 3 {
		t.Fatalf("Expected registry capped at 3, got %d", ProfileCount())
	}

	// 最早的两个画像被淘汰
	for _, id := range ids[:2] {
		if _, err := GetUserProfile(id); !errors.Is(err, utils.ErrProfileNotFound) {
			t.Errorf("Expected evicted profile %s to be gone, got %v", id, err)
		}
	}
	for _, id := range ids[2:] {
		if _, err := GetUserProfile(id); err != nil {
			t.Errorf("Expected profile %s to survive, got %v", id, err)
		}
	}
}
