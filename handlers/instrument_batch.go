package handlers

import (
	"fmt"
	"log"
	"net/http"

	"resonance-backend/dtos"
	"resonance-backend/models"
	"resonance-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validConditions = map[string]bool{
	models.ConditionNew:           true,
	models.ConditionUsedExcellent: true,
	models.ConditionUsedGood:      true,
	models.ConditionUsedFair:      true,
}

// BatchImportInstruments accepts a bulk catalog payload and processes it in
// the background. Rows are matched by slug: existing instruments are
// updated, unknown slugs are created. Returns immediately with a job ID the
// caller can poll.
func (h *InstrumentHandler) BatchImportInstruments(c *gin.Context) {
	var req dtos.InstrumentImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	job := utils.Store.CreateJob(len(req.Instruments))

	go h.processBatchImport(job, req.Instruments, req.DeleteMissing)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID.String(),
		"status": "processing",
		"total":  job.Total,
	})
}

// GetBatchJobStatus returns the status of a catalog import job.
func (h *InstrumentHandler) GetBatchJobStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, exists := utils.Store.GetJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *InstrumentHandler) processBatchImport(job *dtos.BatchJob, items []dtos.InstrumentImportItem, deleteMissing bool) {
	utils.Store.SetProcessing(job.ID)

	// Categories are referenced by slug throughout the payload; load them once.
	categoriesBySlug := make(map[string]models.Category)
	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		log.Printf("Batch import %s: failed to load categories: %v", job.ID, err)
		utils.Store.CompleteJob(job.ID, dtos.JobStatusFailed)
		return
	}
	for _, cat := range categories {
		categoriesBySlug[cat.Slug] = cat
	}

	importedSlugs := make(map[string]bool)
	total := len(items)

	for i, item := range items {
		row := i + 1
		if err := h.importInstrument(item, categoriesBySlug, importedSlugs, job.ID); err != nil {
			utils.Store.UpdateJob(job.ID, func(j *dtos.BatchJob) {
				j.Failed++
				j.Errors = append(j.Errors, dtos.JobError{
					Row:        row,
					Instrument: item.Name,
					Fields:     map[string]string{"error": err.Error()},
				})
			})
		}

		utils.Store.UpdateJob(job.ID, func(j *dtos.BatchJob) {
			j.Processed++
			j.Progress = j.Processed * 90 / total
		})
	}

	if deleteMissing {
		if err := h.deleteInstrumentsNotImported(importedSlugs, job.ID); err != nil {
			log.Printf("Batch import %s: failed to delete missing instruments: %v", job.ID, err)
		}
	}

	status := dtos.JobStatusCompleted
	if done, _ := utils.Store.GetJob(job.ID); done != nil && done.Failed == done.Total {
		status = dtos.JobStatusFailed
	}
	utils.Store.CompleteJob(job.ID, status)
}

func (h *InstrumentHandler) importInstrument(item dtos.InstrumentImportItem, categoriesBySlug map[string]models.Category, importedSlugs map[string]bool, jobID uuid.UUID) error {
	instrumentSlug := item.Slug
	if instrumentSlug == "" {
		instrumentSlug = slug.Make(item.Brand + " " + item.Name)
	}

	if item.Delete {
		var existing models.Instrument
		err := h.DB.Where("slug = ?", instrumentSlug).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if err := h.deleteInstrument(&existing); err != nil {
			return err
		}
		utils.Store.UpdateJob(jobID, func(j *dtos.BatchJob) { j.Deleted++ })
		return nil
	}

	category, ok := categoriesBySlug[item.Category]
	if !ok {
		return fmt.Errorf("unknown category %q", item.Category)
	}
	if item.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("price must be greater than 0")
	}
	if item.Condition != "" && !validConditions[item.Condition] {
		return fmt.Errorf("invalid condition %q", item.Condition)
	}

	importedSlugs[instrumentSlug] = true

	var existing models.Instrument
	err := h.DB.Where("slug = ?", instrumentSlug).First(&existing).Error
	if err == nil {
		existing.Name = item.Name
		existing.CategoryID = category.ID
		existing.Brand = item.Brand
		existing.Price = item.Price
		existing.Description = item.Description
		existing.Specifications = item.Specifications
		existing.Featured = item.Featured
		if item.Condition != "" {
			existing.Condition = item.Condition
		}
		if item.Rating != nil {
			existing.Rating = *item.Rating
		}
		if item.Image != "" {
			existing.Image = item.Image
		}
		if item.InStock != nil {
			existing.InStock = *item.InStock
		}
		if err := h.DB.Save(&existing).Error; err != nil {
			return err
		}
		utils.Store.UpdateJob(jobID, func(j *dtos.BatchJob) { j.Updated++ })
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	instrument := models.Instrument{
		Name:           item.Name,
		Slug:           instrumentSlug,
		CategoryID:     category.ID,
		Brand:          item.Brand,
		Condition:      models.ConditionNew,
		Price:          item.Price,
		Rating:         decimal.NewFromInt(5),
		Description:    item.Description,
		Specifications: item.Specifications,
		Image:          item.Image,
		InStock:        true,
		Featured:       item.Featured,
	}
	if item.Condition != "" {
		instrument.Condition = item.Condition
	}
	if item.Rating != nil {
		instrument.Rating = *item.Rating
	}
	if item.InStock != nil {
		instrument.InStock = *item.InStock
	}

	if err := h.DB.Create(&instrument).Error; err != nil {
		return err
	}
	utils.Store.UpdateJob(jobID, func(j *dtos.BatchJob) { j.Created++ })
	return nil
}

// deleteInstrument retires a catalog row and clears cart lines that
// reference it. Soft-deleted instruments fall out of Preload scope, so
// leaving the rows behind would surface empty line items in cart
// snapshots; the carts themselves survive.
func (h *InstrumentHandler) deleteInstrument(inst *models.Instrument) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("instrument_id = ?", inst.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(inst).Error
	})
}

// deleteInstrumentsNotImported removes catalog rows whose slug was absent
// from the import payload.
func (h *InstrumentHandler) deleteInstrumentsNotImported(importedSlugs map[string]bool, jobID uuid.UUID) error {
	var existing []models.Instrument
	if err := h.DB.Find(&existing).Error; err != nil {
		return err
	}

	for _, inst := range existing {
		if importedSlugs[inst.Slug] {
			continue
		}
		if err := h.deleteInstrument(&inst); err != nil {
			log.Printf("Failed to delete instrument %s: %v", inst.Slug, err)
			continue
		}
		utils.Store.UpdateJob(jobID, func(j *dtos.BatchJob) { j.Deleted++ })
	}
	return nil
}
