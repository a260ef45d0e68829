package site

import (
	"errors"
	"net/http"

	"payments-app/internal/domain/site"
	"payments-app/internal/infra/mailer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves published marketing content and takes contact-form
// submissions.
type Handler struct {
	db   *gorm.DB
	mail *mailer.Mailer
	log  *zap.Logger
}

func NewHandler(db *gorm.DB, mail *mailer.Mailer, log *zap.Logger) *Handler {
	return &Handler{db: db, mail: mail, log: log}
}

func (h *Handler) ListServices(c *gin.Context) {
	var services []site.Service
	if err := h.db.Where("published = ?", true).Order("id").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	var svc site.Service
	err := h.db.Where("slug = ? AND published = ?", c.Param("slug"), true).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	var testimonials []site.Testimonial
	if err := h.db.Where("published = ?", true).Order("id").Find(&testimonials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load testimonials"})
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (h *Handler) ListFAQs(c *gin.Context) {
	var faqs []site.FAQ
	if err := h.db.Where("published = ?", true).Order("position, id").Find(&faqs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load FAQs"})
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func (h *Handler) GetHomepage(c *gin.Context) {
	var page site.Homepage
	err := h.db.First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Homepage not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load homepage"})
		return
	}
	c.JSON(http.StatusOK, page)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact persists the submission and queues the notification relay;
// the email never blocks or fails the response. POST /contact
func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, email, message"})
		return
	}

	submission := site.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if req.Phone != "" {
		submission.Phone = &req.Phone
	}
	if req.Subject != "" {
		submission.Subject = &req.Subject
	}

	if err := h.db.Create(&submission).Error; err != nil {
		h.log.Error("Failed to store contact submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store submission"})
		return
	}

	h.mail.SendContactNotification(&submission)
	h.log.Info("Contact submission received", zap.Uint("submission_id", submission.ID))

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": submission.ID})
}
