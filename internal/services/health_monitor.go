package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"pminternship/internship-ai/internal/models"
)

// BackendStatus is the outcome of the last backend health check.
type BackendStatus struct {
	Healthy   bool                 `json:"healthy"`
	Status    *models.HealthStatus `json:"status,omitempty"`
	Error     string               `json:"error,omitempty"`
	CheckedAt time.Time            `json:"checkedAt"`
}

// HealthMonitor checks the backend on a cron schedule.
type HealthMonitor struct {
	client APIClient
	spec   string
	cron   *cron.Cron

	mu   sync.RWMutex
	last BackendStatus
}

func NewHealthMonitor(client APIClient, spec string) *HealthMonitor {
	return &HealthMonitor{
		client: client,
		spec:   spec,
		cron:   cron.New(),
	}
}

// Start schedules the check and runs it once right away.
func (m *HealthMonitor) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(m.spec, func() { m.Check(ctx) }); err != nil {
		return fmt.Errorf("invalid health check schedule %q: %w", m.spec, err)
	}
	m.cron.Start()
	go m.Check(ctx)

	log.Printf("🩺 Backend health monitor scheduled (%s)\n", m.spec)
	return nil
}

// Stop waits for a running check to finish.
func (m *HealthMonitor) Stop() {
	<-m.cron.Stop().Done()
	log.Println("🩺 Backend health monitor stopped")
}

// Check calls the backend health endpoint once and records the result.
func (m *HealthMonitor) Check(ctx context.Context) BackendStatus {
	resp := m.client.HealthCheck(ctx)

	status := BackendStatus{
		Healthy:   resp.Success,
		Status:    resp.Data,
		CheckedAt: time.Now(),
	}
	if !resp.Success {
		status.Error = failureMessage(resp.Error)
	}

	m.mu.Lock()
	changed := m.last.CheckedAt.IsZero() || m.last.Healthy != status.Healthy
	m.last = status
	m.mu.Unlock()

	if changed {
		if status.Healthy {
			log.Println("✅ Backend is healthy")
		} else {
			log.Printf("⚠️  Backend unhealthy: %s\n", status.Error)
		}
	}
	return status
}

// Last returns the most recent check result.
func (m *HealthMonitor) Last() BackendStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}
