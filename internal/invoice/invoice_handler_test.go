package invoice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-fleetops/internal/invoice"
	invoiceerrors "go-fleetops/internal/invoice/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeInvoiceService struct {
	createFromJobFn func(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error)
	getAllFn        func(ctx context.Context) ([]invoice.InvoiceResponse, error)
	getByIDFn       func(ctx context.Context, id string) (invoice.InvoiceResponse, error)
	addItemFn       func(ctx context.Context, invoiceID string, req invoice.AddInvoiceItemRequest) (invoice.InvoiceResponse, error)
	updateItemFn    func(ctx context.Context, invoiceID, itemID string, req invoice.UpdateInvoiceItemRequest) (invoice.InvoiceResponse, error)
	deleteItemFn    func(ctx context.Context, invoiceID, itemID string) (invoice.InvoiceResponse, error)
	issueFn         func(ctx context.Context, id string) (invoice.InvoiceResponse, error)
	cancelFn        func(ctx context.Context, id string) (invoice.InvoiceResponse, error)
	renderPDFFn     func(ctx context.Context, id string) ([]byte, string, error)
}

func (f *fakeInvoiceService) CreateFromJob(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	return f.createFromJobFn(ctx, req)
}

func (f *fakeInvoiceService) GetAll(ctx context.Context) ([]invoice.InvoiceResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeInvoiceService) AddItem(ctx context.Context, invoiceID string, req invoice.AddInvoiceItemRequest) (invoice.InvoiceResponse, error) {
	return f.addItemFn(ctx, invoiceID, req)
}

func (f *fakeInvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID string, req invoice.UpdateInvoiceItemRequest) (invoice.InvoiceResponse, error) {
	return f.updateItemFn(ctx, invoiceID, itemID, req)
}

func (f *fakeInvoiceService) DeleteItem(ctx context.Context, invoiceID, itemID string) (invoice.InvoiceResponse, error) {
	return f.deleteItemFn(ctx, invoiceID, itemID)
}

func (f *fakeInvoiceService) Issue(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	return f.issueFn(ctx, id)
}

func (f *fakeInvoiceService) Cancel(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	return f.cancelFn(ctx, id)
}

func (f *fakeInvoiceService) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	return f.renderPDFFn(ctx, id)
}

func TestInvoiceHandler_Create(t *testing.T) {
	jobID := uuid.New().String()

	svc := &fakeInvoiceService{
		createFromJobFn: func(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
			assert.Equal(t, jobID, req.JobID)
			return invoice.InvoiceResponse{
				ID:     uuid.New().String(),
				JobID:  req.JobID,
				Number: "INV-2026-000007",
				Status: invoice.StatusDraft,
			}, nil
		},
	}

	h := invoice.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"job_id":"` + jobID + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestInvoiceHandler_Create_MissingJobID(t *testing.T) {
	svc := &fakeInvoiceService{}

	h := invoice.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestInvoiceHandler_AddItem_NotDraft(t *testing.T) {
	svc := &fakeInvoiceService{
		addItemFn: func(ctx context.Context, invoiceID string, req invoice.AddInvoiceItemRequest) (invoice.InvoiceResponse, error) {
			return invoice.InvoiceResponse{}, invoiceerrors.ErrInvoiceNotDraft
		},
	}

	h := invoice.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"product_name":"Washed Sand","qty":45,"unit_price":18.89}`
	c.Request = httptest.NewRequest(http.MethodPost, "/invoices/123/items", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "123"}}

	h.AddItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestInvoiceHandler_RenderPDF(t *testing.T) {
	id := uuid.New().String()

	svc := &fakeInvoiceService{
		renderPDFFn: func(ctx context.Context, lookupID string) ([]byte, string, error) {
			assert.Equal(t, id, lookupID)
			return []byte("%PDF-1.4 stub"), "INV-2026-000007.pdf", nil
		},
	}

	h := invoice.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/invoices/"+id+"/pdf", nil)
	c.Params = []gin.Param{{Key: "id", Value: id}}

	h.RenderPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "INV-2026-000007.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-1.4"))
}

func TestInvoiceHandler_GetAll_Pagination(t *testing.T) {
	svc := &fakeInvoiceService{
		getAllFn: func(ctx context.Context) ([]invoice.InvoiceResponse, error) {
			out := make([]invoice.InvoiceResponse, 15)
			for i := range out {
				out[i] = invoice.InvoiceResponse{ID: uuid.New().String(), Status: invoice.StatusDraft}
			}
			return out, nil
		},
	}

	h := invoice.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/invoices?page=2&page_size=10", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var page []invoice.InvoiceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 5)
}
