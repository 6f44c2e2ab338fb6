package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

// 用户画像缓存：只增不改，互斥锁串行化并发写入
// 超出配置上限时按插入顺序淘汰最早的画像
var (
	profileMu    sync.Mutex
	profiles     = make(map[string]models.UserProfile)
	profileOrder = make([]string, 0)
)

// SaveUserProfile 保存用户画像并返回生成的用户ID
// ID取时间戳和关键画像字段的MD5前12位；画像保存后不可修改，
// 重复提交总是产生新的ID，哈希碰撞时重新生成而不覆盖已有画像
func SaveUserProfile(cfg *config.Config, profile *models.UserProfile) string {
	seed := fmt.Sprintf("%s%d%.2f%s",
		time.Now().Format(time.RFC3339Nano),
		profile.Age, profile.AnnualIncome, profile.RiskTolerance)

	profileMu.Lock()
	defer profileMu.Unlock()

	userID := utils.GenerateUserID(seed)
	for i := 1; ; i++ {
		if _, exists := profiles[userID]; !exists {
			break
		}
		userID = utils.GenerateUserID(fmt.Sprintf("%s#%d", seed, i))
	}

	profiles[userID] = *profile // 存入副本，调用方后续修改不影响缓存
	profileOrder = append(profileOrder, userID)

	for cfg.Recommender.ProfileCap > 0 && len(profileOrder) > cfg.Recommender.ProfileCap {
		oldest := profileOrder[0]
		profileOrder = profileOrder[1:]
		delete(profiles, oldest)
	}

	return userID
}

// GetUserProfile 按用户ID查找画像，不存在时返回ErrProfileNotFound
func GetUserProfile(userID string) (*models.UserProfile, error) {
	profileMu.Lock()
	defer profileMu.Unlock()

	p, ok := profiles[userID]
	if !ok {
		return nil, utils.ErrProfileNotFound
	}
	profileCopy := p
	return &profileCopy, nil
}

// ProfileCount 当前缓存的画像数量
func ProfileCount() int {
	profileMu.Lock()
	defer profileMu.Unlock()
	return len(profiles)
}
