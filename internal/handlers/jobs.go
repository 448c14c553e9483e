package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marminbh/job-intake-svc/internal/ledger"
)

// JobsHandler serves the intake ledger over the API
type JobsHandler struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewJobsHandler(db *gorm.DB, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{
		DB:     db,
		Logger: logger,
	}
}

// JobsResponse represents the response structure for GET /jobs
type JobsResponse struct {
	Jobs    []JobDTO `json:"jobs"`
	HasMore bool     `json:"has_more"`
}

// JobDTO is one intake ledger row in the response
type JobDTO struct {
	JobNumber     int    `json:"job_number"`
	Year          int    `json:"year"`
	FolderName    string `json:"folder_name"`
	ClientCompany string `json:"client_company"`
	ContactName   string `json:"contact_name"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"` // UTC ISO 8601
}

// GetJobs handles GET /jobs
// Query parameters:
//   - year (optional): restrict to one ledger year
//   - limit (optional, default 25): number of rows to return
//   - offset (optional, default 0): number of rows to skip
func (h *JobsHandler) GetJobs(c *fiber.Ctx) error {
	limit := 25
	if limitStr := c.Query("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsedLimit
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsedOffset, err := strconv.Atoi(offsetStr)
		if err != nil || parsedOffset < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "offset must be a non-negative integer",
			})
		}
		offset = parsedOffset
	}

	query := h.DB.Model(&ledger.Entry{}).
		Order("created_at DESC").
		Limit(limit + 1). // one extra to determine has_more
		Offset(offset)

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "year must be an integer",
			})
		}
		query = query.Where("year = ?", year)
	}

	var entries []ledger.Entry
	if err := query.Find(&entries).Error; err != nil {
		h.Logger.Error("Failed to query job ledger", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch jobs",
		})
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	jobs := make([]JobDTO, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, JobDTO{
			JobNumber:     e.JobNumber,
			Year:          e.Year,
			FolderName:    e.FullFolderName,
			ClientCompany: e.ClientCompany,
			ContactName:   e.ContactName,
			Status:        e.Status,
			CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(JobsResponse{
		Jobs:    jobs,
		HasMore: hasMore,
	})
}
