package services

import (
	"context"
	"sync"
	"time"

	"github.com/daemroni/leaflove/internal/security"
)

var careTips = []string{
	"Water most houseplants only when the top few centimetres of soil feel dry.",
	"Rotate your plants a quarter turn every week so they grow evenly towards the light.",
	"Dust on leaves blocks light. Wipe them down with a damp cloth once a month.",
	"Yellowing lower leaves usually mean too much water, not too little.",
	"Group humidity-loving plants together; they raise the moisture around each other.",
	"Fertilise during the growing season only. Resting plants cannot use the extra nutrients.",
	"Repot when roots circle the drainage holes, ideally in spring.",
	"Keep sensitive plants away from radiators, air conditioners and draughty windows.",
	"Terracotta pots dry out faster than plastic ones. Adjust your watering to the pot.",
	"Check the underside of leaves regularly; pests settle there first.",
}

const defaultTipRotation = 10 * time.Second

// TipService serves a care tip of the moment and rotates it in the
// background. Rotation is best effort; a failed random draw keeps the
// previous tip.
type TipService struct {
	mu       sync.RWMutex
	interval time.Duration
	current  string
}

func NewTipService(interval time.Duration) *TipService {
	if interval <= 0 {
		interval = defaultTipRotation
	}
	service := &TipService{interval: interval}
	service.Rotate()
	return service
}

// Current returns the tip picked by the most recent rotation.
func (service *TipService) Current() string {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.current
}

// Rotate draws a new random tip.
func (service *TipService) Rotate() {
	index, err := security.RandomIndex(len(careTips))
	if err != nil {
		return
	}

	service.mu.Lock()
	service.current = careTips[index]
	service.mu.Unlock()
}

// Start launches the rotation loop. It returns immediately and stops
// when ctx is cancelled.
func (service *TipService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(service.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.Rotate()
			}
		}
	}()
}
