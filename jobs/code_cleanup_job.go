package jobs

import (
	"log"
	"time"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

// CodeCleanupJob removes activation codes that expired without being
// redeemed. Redemption itself already refuses expired codes; this just keeps
// the table from growing forever.
type CodeCleanupJob struct {
	stopChan chan bool
}

// NewCodeCleanupJob creates a new cleanup job
func NewCodeCleanupJob() *CodeCleanupJob {
	return &CodeCleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CodeCleanupJob) Start() {
	go j.run()
	log.Println("🚀 Activation code cleanup job started")
}

// Stop stops the cleanup job
func (j *CodeCleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Activation code cleanup job stopped")
}

// run executes the cleanup job
func (j *CodeCleanupJob) run() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweepExpiredCodes()
		case <-j.stopChan:
			return
		}
	}
}

// sweepExpiredCodes deletes expired unused codes
func (j *CodeCleanupJob) sweepExpiredCodes() {
	result := database.DB.
		Where("used = ? AND expires_at <= ?", false, time.Now()).
		Delete(&models.ActivationCode{})

	if result.Error != nil {
		log.Printf("❌ Error sweeping expired activation codes: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Swept %d expired activation codes", result.RowsAffected)
	}
}
