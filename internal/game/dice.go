package game

import (
	"math/rand"
	"sync"
	"time"
)

// DiceRoller 骰子接口，测试时可注入固定序列
type DiceRoller interface {
	Roll() (int, int)
}

// randomRoller 默认随机骰子
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller 创建随机骰子
func NewRandomRoller() DiceRoller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Roll 掷两颗骰子
func (r *randomRoller) Roll() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(6) + 1, r.rng.Intn(6) + 1
}
