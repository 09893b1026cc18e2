package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"catalog/internal/apperror"
	"catalog/internal/domain"
	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repository"

	"go.uber.org/zap"
)

// Notifier records an admin notification. Enquiry submission treats it as
// best effort.
type Notifier interface {
	Notify(ctx context.Context, in NotificationInput) (*models.Notification, error)
}

// Alerter sends an out-of-band alert, e.g. e-mail.
type Alerter interface {
	Send(subject, body string) error
}

type ContactEnquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ProductEnquiryInput struct {
	ProductName string `json:"productName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Description string `json:"description"`
}

// alertQueueSize bounds the e-mails waiting behind a slow SMTP server.
// Alerts beyond it are dropped.
const alertQueueSize = 32

type alertMsg struct {
	subject, body string
}

type EnquiryService struct {
	contacts *repository.ContactEnquiryRepository
	products *repository.ProductEnquiryRepository
	notifier Notifier
	alerter  Alerter
	log      *zap.Logger

	alerts    chan alertMsg
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewEnquiryService builds the service. notifier and alerter may be nil.
// With an alerter, a single worker sends e-mails from a bounded queue
// until Close.
func NewEnquiryService(repos *repository.Repositories, notifier Notifier, alerter Alerter, log *zap.Logger) *EnquiryService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &EnquiryService{
		contacts: repos.ContactEnquiries,
		products: repos.ProductEnquiries,
		notifier: notifier,
		alerter:  alerter,
		log:      log,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if alerter == nil {
		close(s.done)
		return s
	}
	s.alerts = make(chan alertMsg, alertQueueSize)
	go s.sendAlerts()
	return s
}

// Close stops the alert worker once its current send returns. Queued
// alerts are discarded.
func (s *EnquiryService) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

func (s *EnquiryService) sendAlerts() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case m := <-s.alerts:
			if err := s.alerter.Send(m.subject, m.body); err != nil {
				metrics.RecordNotificationFailure("email")
				s.log.Warn("failed to send enquiry e-mail", zap.String("subject", m.subject), zap.Error(err))
			}
		}
	}
}

func (s *EnquiryService) SubmitContact(ctx context.Context, in ContactEnquiryInput) (*models.ContactEnquiry, error) {
	e := &models.ContactEnquiry{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  domain.StatusPending,
	}
	if e.Name == "" || e.Email == "" || e.Subject == "" || e.Message == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if err := s.contacts.Create(ctx, e); err != nil {
		return nil, err
	}
	metrics.RecordEnquiry(domain.NotificationContactEnquiry)

	msg := fmt.Sprintf("%s submitted a contact enquiry: \"%s\"", e.Name, e.Subject)
	s.notify(ctx, NotificationInput{
		Title:     "New Contact Enquiry",
		Message:   msg,
		Type:      domain.NotificationContactEnquiry,
		Icon:      "mail",
		Link:      strPtr(domain.LinkContactEnquiries),
		RelatedID: strPtr(e.ID),
	})
	s.alert("New Contact Enquiry", fmt.Sprintf("%s\n\nFrom: %s <%s>\n\n%s", msg, e.Name, e.Email, e.Message))
	return e, nil
}

func (s *EnquiryService) SubmitProduct(ctx context.Context, in ProductEnquiryInput) (*models.ProductEnquiry, error) {
	e := &models.ProductEnquiry{
		ProductName: strings.TrimSpace(in.ProductName),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:      strings.TrimSpace(in.Mobile),
		Description: strings.TrimSpace(in.Description),
		Status:      domain.StatusPending,
	}
	if e.ProductName == "" || e.Name == "" || e.Email == "" || e.Mobile == "" || e.Description == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if err := s.products.Create(ctx, e); err != nil {
		return nil, err
	}
	metrics.RecordEnquiry(domain.NotificationProductEnquiry)

	msg := fmt.Sprintf("%s enquired about \"%s\"", e.Name, e.ProductName)
	s.notify(ctx, NotificationInput{
		Title:     "New Product Enquiry",
		Message:   msg,
		Type:      domain.NotificationProductEnquiry,
		Icon:      "package",
		Link:      strPtr(domain.LinkProductEnquiries),
		RelatedID: strPtr(e.ID),
	})
	s.alert("New Product Enquiry", fmt.Sprintf("%s\n\nFrom: %s <%s>, %s\n\n%s", msg, e.Name, e.Email, e.Mobile, e.Description))
	return e, nil
}

// notify never fails the caller; errors are logged and counted.
func (s *EnquiryService) notify(ctx context.Context, in NotificationInput) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		metrics.RecordNotificationFailure("store")
		s.log.Error("failed to create enquiry notification",
			zap.String("type", in.Type), zap.Stringp("related_id", in.RelatedID), zap.Error(err))
	}
}

func (s *EnquiryService) alert(subject, body string) {
	if s.alerts == nil {
		return
	}
	select {
	case s.alerts <- alertMsg{subject: subject, body: body}:
	default:
		metrics.RecordNotificationFailure("email_queue_full")
		s.log.Warn("enquiry e-mail queue full, alert dropped", zap.String("subject", subject))
	}
}

func validStatusFilter(status string) error {
	if status != "" && !domain.ValidEnquiryStatus(status) {
		return apperror.Validation("Invalid status")
	}
	return nil
}

func (s *EnquiryService) ListContact(ctx context.Context, status string) ([]models.ContactEnquiry, error) {
	if err := validStatusFilter(status); err != nil {
		return nil, err
	}
	return s.contacts.FindAll(ctx, repository.EnquiryFilter{Status: status})
}

func (s *EnquiryService) GetContact(ctx context.Context, id string) (*models.ContactEnquiry, error) {
	e, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperror.NotFound("Enquiry not found")
	}
	return e, nil
}

// UpdateContactStatus validates status before touching the row.
func (s *EnquiryService) UpdateContactStatus(ctx context.Context, id, status string) (*models.ContactEnquiry, error) {
	if !domain.ValidEnquiryStatus(status) {
		return nil, apperror.Validation("Invalid status")
	}
	if _, err := s.GetContact(ctx, id); err != nil {
		return nil, err
	}
	return s.contacts.UpdateStatus(ctx, id, status)
}

func (s *EnquiryService) DeleteContact(ctx context.Context, id string) error {
	if _, err := s.GetContact(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}

func (s *EnquiryService) ListProduct(ctx context.Context, status string) ([]models.ProductEnquiry, error) {
	if err := validStatusFilter(status); err != nil {
		return nil, err
	}
	return s.products.FindAll(ctx, repository.EnquiryFilter{Status: status})
}

func (s *EnquiryService) GetProduct(ctx context.Context, id string) (*models.ProductEnquiry, error) {
	e, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperror.NotFound("Enquiry not found")
	}
	return e, nil
}

func (s *EnquiryService) UpdateProductStatus(ctx context.Context, id, status string) (*models.ProductEnquiry, error) {
	if !domain.ValidEnquiryStatus(status) {
		return nil, apperror.Validation("Invalid status")
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	return s.products.UpdateStatus(ctx, id, status)
}

func (s *EnquiryService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
