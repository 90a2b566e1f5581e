// Package web serves the public marketing site. Visitors who submit the
// contact form become leads in the CRM with an inbound communication on
// their timeline.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/poolcrm/backend/internal/application/communication"
	appcrm "github.com/poolcrm/backend/internal/application/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

const leadSource = "website"

// ServiceOffering is one entry on the services page
type ServiceOffering struct {
	Name        string
	Description string
}

// Site renders the marketing pages and handles contact submissions
type Site struct {
	customerService *appcrm.CustomerService
	commService     *communication.Service
	pages           map[string]*template.Template
	services        []ServiceOffering
	logger          *zap.Logger
}

// NewSite creates the marketing site
func NewSite(
	customerService *appcrm.CustomerService,
	commService *communication.Service,
	logger *zap.Logger,
) (*Site, error) {
	// Every page defines "content", so each gets its own template set
	// paired with the shared layout.
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "services", "contact"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}

	titler := cases.Title(language.AmericanEnglish)
	offerings := []ServiceOffering{
		{"weekly pool cleaning", "Skimming, brushing, vacuuming, and water testing on a fixed weekly route."},
		{"chemical balancing", "Chlorine, salt, and bromine systems kept in range year round."},
		{"equipment repair", "Pumps, filters, heaters, and automation diagnosed and fixed."},
		{"green pool recovery", "Algae cleanup that gets a neglected pool swim-ready again."},
	}
	for i := range offerings {
		offerings[i].Name = titler.String(offerings[i].Name)
	}

	return &Site{
		customerService: customerService,
		commService:     commService,
		pages:           pages,
		services:        offerings,
		logger:          logger,
	}, nil
}

// RegisterRoutes registers the public website routes on the engine root
func (s *Site) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", s.home)
	engine.GET("/services", s.servicesPage)
	engine.GET("/contact", s.contactForm)
	engine.POST("/contact", s.contactSubmit)
}

type pageData struct {
	Title    string
	Services []ServiceOffering

	// Contact form state
	Name         string
	Phone        string
	Email        string
	Message      string
	Submitted    bool
	ErrorMessage string
}

func (s *Site) render(c *gin.Context, status int, page string, data pageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.pages[page].ExecuteTemplate(c.Writer, "layout", data); err != nil {
		s.logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
	}
}

func (s *Site) home(c *gin.Context) {
	s.render(c, http.StatusOK, "home", pageData{Title: "Home"})
}

func (s *Site) servicesPage(c *gin.Context) {
	s.render(c, http.StatusOK, "services", pageData{Title: "Services", Services: s.services})
}

func (s *Site) contactForm(c *gin.Context) {
	s.render(c, http.StatusOK, "contact", pageData{Title: "Contact"})
}

// contactSubmit turns a form submission into a lead. A phone number we
// already know attaches the message to the existing customer instead of
// failing the visitor.
func (s *Site) contactSubmit(c *gin.Context) {
	data := pageData{
		Title:   "Contact",
		Name:    strings.TrimSpace(c.PostForm("name")),
		Phone:   strings.TrimSpace(c.PostForm("phone")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}

	if data.Name == "" || data.Phone == "" {
		data.ErrorMessage = "Please give us your name and a phone number so we can reach you."
		s.render(c, http.StatusBadRequest, "contact", data)
		return
	}

	ctx := c.Request.Context()

	customerID, err := s.upsertLead(c, data)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeValidation {
			data.ErrorMessage = "That phone number does not look right. Please check it and try again."
			s.render(c, http.StatusBadRequest, "contact", data)
			return
		}
		s.logger.Error("Failed to create lead from contact form", zap.Error(err))
		data.ErrorMessage = "Something went wrong on our end. Please call us instead."
		s.render(c, http.StatusInternalServerError, "contact", data)
		return
	}

	summary := "Website contact form submission"
	if data.Message != "" {
		summary = "Website contact form: " + data.Message
	}
	if _, err := s.commService.Log(ctx, uuid.Nil, communication.LogCommunicationRequest{
		CustomerID: customerID,
		Type:       "email",
		Direction:  "inbound",
		Summary:    summary,
	}); err != nil {
		// The lead exists; losing the timeline entry is not worth
		// failing the visitor.
		s.logger.Warn("Failed to log contact form communication",
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
	}

	data.Submitted = true
	data.Phone, data.Email, data.Message = "", "", ""
	s.render(c, http.StatusOK, "contact", data)
}

func (s *Site) upsertLead(c *gin.Context, data pageData) (uuid.UUID, error) {
	ctx := c.Request.Context()

	created, err := s.customerService.CreateCustomer(ctx, appcrm.CreateCustomerRequest{
		Name:   data.Name,
		Phone:  data.Phone,
		Email:  data.Email,
		Source: leadSource,
	})
	if err == nil {
		return created.ID, nil
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == shared.CodeDuplicatePhone {
		if existingID, ok := domainErr.Details["existing_customer_id"].(string); ok {
			if id, parseErr := uuid.Parse(existingID); parseErr == nil {
				return id, nil
			}
		}
	}
	return uuid.Nil, err
}
