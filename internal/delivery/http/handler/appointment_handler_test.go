package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/internal/usecase"
	"radlab-backoffice/pkg/pagination"
	"radlab-backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	err         error
	receivedPDF bool
}

func (u *stubAppointmentUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return nil, u.err
}
func (u *stubAppointmentUsecase) GetAll(ctx context.Context, filter *entity.AppointmentFilter, params *pagination.Params) ([]dto.AppointmentResponse, int64, error) {
	return nil, 0, u.err
}
func (u *stubAppointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, u.err
}
func (u *stubAppointmentUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return nil, u.err
}
func (u *stubAppointmentUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest, pdfFile io.Reader) (*dto.AppointmentResponse, error) {
	u.receivedPDF = pdfFile != nil
	if u.err != nil {
		return nil, u.err
	}
	return &dto.AppointmentResponse{ID: id, Status: req.Status}, nil
}
func (u *stubAppointmentUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	return u.err
}
func (u *stubAppointmentUsecase) GetHistory(ctx context.Context, id uuid.UUID, params *pagination.Params) ([]dto.AuditLogResponse, int64, error) {
	return nil, 0, u.err
}

func newAppointmentRequest(t *testing.T, method, body, contentType string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, "/appointments/"+uuid.NewString(), strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	actor := &entity.User{ID: uuid.New(), IsSuperAdmin: true}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserKey, actor))
}

func TestDeleteNotScheduledAnswersBadRequest(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{err: usecase.ErrDeleteNotScheduled}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.Delete(rec, newAppointmentRequest(t, http.MethodDelete, "", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateTerminalAppointmentAnswersBadRequest(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{err: usecase.ErrTerminalState}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.Update(rec, newAppointmentRequest(t, http.MethodPatch, "{}", "application/json"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatusStockUnavailableAnswersBadRequest(t *testing.T) {
	stockErr := &usecase.ErrStockUnavailable{Result: &service.AvailabilityResult{
		Available: false,
		UnavailableItems: []service.ItemStatus{
			{Name: "x-ray film", Required: 4, InStock: 1, Reason: "Insufficient quantity"},
		},
	}}
	h := NewAppointmentHandler(&stubAppointmentUsecase{err: stockErr}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, newAppointmentRequest(t, http.MethodPatch, `{"status":"completed"}`, "application/json"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "x-ray film") {
		t.Error("response does not carry the per-item stock reasons")
	}
}

func TestUpdateStatusReadsPDFFromMultipart(t *testing.T) {
	stub := &stubAppointmentUsecase{}
	h := NewAppointmentHandler(stub, validator.NewValidator())

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("status", "completed"); err != nil {
		t.Fatalf("failed to write status field: %v", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="pdfFile"; filename="report.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := form.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.7")); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	form.Close()

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, newAppointmentRequest(t, http.MethodPatch, body.String(), form.FormDataContentType()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !stub.receivedPDF {
		t.Error("PDF report from the pdfFile part never reached the usecase")
	}
}
