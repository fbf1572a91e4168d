package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gatekeeper.app/api/common/ratelimit"
	"gatekeeper.app/api/internal/http/handler"
	"gatekeeper.app/api/internal/http/middleware"
	"gatekeeper.app/api/internal/mailauth"
	"gatekeeper.app/api/internal/model"
	"gatekeeper.app/api/internal/service"
)

var _ = Describe("TicketHandler", func() {
	var (
		router *gin.Engine
		svc    *mockTicketService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockTicketService{}
		h := handler.NewTicketHandler(svc)

		router.POST("/api/v1/tickets", h.Submit)
		router.GET("/api/v1/tickets", h.List)
		router.GET("/api/v1/tickets/:id", h.Get)
	})

	submitBody := func(overrides map[string]any) []byte {
		payload := map[string]any{
			"reporter": "reporter@example.com",
			"title":    "suspicious invoice",
			"body":     "looks spoofed",
			"urls":     []string{"https://evil.example.com"},
			"headers":  "Authentication-Results: mx; spf=pass; dkim=pass; dmarc=pass",
		}
		for k, v := range overrides {
			payload[k] = v
		}
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		return body
	}

	Describe("Submit", func() {
		It("returns 201 with ticket id and terminal status", func() {
			svc.submitFn = func(_ context.Context, in service.SubmitTicketInput) (*model.Ticket, error) {
				Expect(in.Reporter).To(Equal("reporter@example.com"))
				Expect(in.RawHeaders).To(ContainSubstring("Authentication-Results"))
				return &model.Ticket{ID: 7, Status: model.TicketStatusPass}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBuffer(submitBody(nil)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["ticket_id"]).To(Equal("7"))
			Expect(resp["status"]).To(Equal("pass"))
		})

		It("returns a normal response when the analyzer was unreachable", func() {
			svc.submitFn = func(_ context.Context, _ service.SubmitTicketInput) (*model.Ticket, error) {
				return &model.Ticket{ID: 8, Status: model.TicketStatusAnalyzerError}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBuffer(submitBody(nil)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("analyzer_error"))
		})

		It("rejects a malformed reporter address before any processing", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets",
				bytes.NewBuffer(submitBody(map[string]any{"reporter": "not-an-email"})))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(svc.submitCalls).To(BeZero())
		})

		It("accepts empty header text and still produces a status", func() {
			svc.submitFn = func(_ context.Context, in service.SubmitTicketInput) (*model.Ticket, error) {
				Expect(in.RawHeaders).To(BeEmpty())
				return &model.Ticket{ID: 9, Status: model.TicketStatusUnknown}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets",
				bytes.NewBuffer(submitBody(map[string]any{"headers": ""})))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("unknown"))
		})

		It("returns 500 when the lifecycle itself fails", func() {
			svc.submitFn = func(_ context.Context, _ service.SubmitTicketInput) (*model.Ticket, error) {
				return nil, context.DeadlineExceeded
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBuffer(submitBody(nil)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("List", func() {
		It("returns abbreviated tickets", func() {
			svc.listFn = func(_ context.Context) ([]model.TicketSummary, error) {
				return []model.TicketSummary{
					{ID: 2, Reporter: "b@example.com", Title: "newer", URLs: []string{}, Status: model.TicketStatusFail},
					{ID: 1, Reporter: "a@example.com", Title: "older", URLs: []string{"https://x"}, Status: model.TicketStatusPass},
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Tickets []map[string]any `json:"tickets"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Tickets).To(HaveLen(2))
			Expect(resp.Tickets[0]["id"]).To(Equal("2"))
			Expect(resp.Tickets[0]).NotTo(HaveKey("headers"))
			Expect(resp.Tickets[0]).NotTo(HaveKey("result"))
		})
	})

	Describe("Get", func() {
		It("returns the full record including headers and result", func() {
			html := "<html>report</html>"
			svc.getFn = func(_ context.Context, ticketID int64) (*model.Ticket, error) {
				return &model.Ticket{
					ID:          ticketID,
					SubmittedAt: time.Now(),
					Reporter:    "reporter@example.com",
					Title:       "suspicious invoice",
					Body:        "looks spoofed",
					URLs:        []string{},
					RawHeaders:  "Authentication-Results: mx; spf=pass",
					Status:      model.TicketStatusFail,
					Result: &model.TicketResult{
						HTML:    &html,
						Verdict: mailauth.Verdict{Overall: mailauth.OverallFail},
					},
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets/42", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("42"))
			Expect(resp["headers"]).To(ContainSubstring("spf=pass"))

			result, ok := resp["result"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(result["html"]).To(Equal(html))

			verdict, ok := result["verdict"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(verdict["overall"]).To(Equal("fail"))
		})

		It("returns 404 with a distinct body for an unknown id", func() {
			svc.getFn = func(_ context.Context, _ int64) (*model.Ticket, error) {
				return nil, service.ErrTicketNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets/999", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["code"]).To(Equal("not_found"))
		})

		It("returns 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets/abc", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Submit with rate limiting", func() {
		It("returns 429 once the window limit is exhausted", func() {
			limited := gin.New()
			h := handler.NewTicketHandler(svc)
			group := limited.Group("/api/v1/tickets")
			group.Use(middleware.RateLimit(ratelimit.NewInMemory(time.Minute), 2))
			group.POST("", h.Submit)

			codes := []int{}
			for range 3 {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBuffer(submitBody(nil)))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				limited.ServeHTTP(w, req)
				codes = append(codes, w.Code)
			}

			Expect(codes[0]).To(Equal(http.StatusCreated))
			Expect(codes[1]).To(Equal(http.StatusCreated))
			Expect(codes[2]).To(Equal(http.StatusTooManyRequests))
		})
	})
})
