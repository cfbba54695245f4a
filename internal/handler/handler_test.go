package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/handler"
	"github.com/office-booking-api/internal/middleware"
	"github.com/office-booking-api/internal/repository"
	"github.com/office-booking-api/internal/service"
	"github.com/office-booking-api/internal/testutil"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

const today = "2024-06-10"

type testServer struct {
	server *httptest.Server
	db     *gorm.DB
}

func newRouter(tb testing.TB, staticDir string) (*handler.Router, *gorm.DB) {
	tb.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	db := testutil.NewDB(tb)
	clock := func() time.Time { return fixedNow }

	bookingRepo := repository.NewBookingRepository(db)
	resRepo := repository.NewResourceRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	tx := repository.NewTransactor(db, false)

	empService := service.NewEmployeeService(empRepo, bookingRepo, tx, logger)
	resService := service.NewResourceService(resRepo, bookingRepo, tx, logger)
	bookingService := service.NewBookingService(bookingRepo, resRepo, empRepo, tx,
		service.BookingPolicy{ValidateReferencesOnUpdate: true}, logger, service.WithClock(clock))
	reportService := service.NewReportService(bookingRepo, service.DefaultReportWindowDays, clock)

	return handler.NewRouter(
		handler.NewEmployeeHandler(empService, logger),
		handler.NewResourceHandler(resService, logger),
		handler.NewBookingHandler(bookingService, reportService, logger),
		staticDir,
		logger,
	), db
}

func setupTestServer(t *testing.T) *testServer {
	router, db := newRouter(t, "")
	return &testServer{
		server: httptest.NewServer(router.Setup()),
		db:     db,
	}
}

func (ts *testServer) Close() {
	ts.server.Close()
}

func (ts *testServer) url(path string) string {
	return ts.server.URL + path
}

func postJSON(url string, body map[string]any) (*http.Response, error) {
	data, _ := json.Marshal(body)
	return http.Post(url, "application/json", bytes.NewBuffer(data))
}

func putJSON(url string, body map[string]any) (*http.Response, error) {
	data, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func deleteRequest(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// mustPost создаёт сущность и возвращает её id
func mustPost(t *testing.T, url string, body map[string]any) int64 {
	t.Helper()
	resp, err := postJSON(url, body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("expected %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &created)
	return created.ID
}

func expectError(t *testing.T, resp *http.Response, err error, status int, code string) {
	t.Helper()
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != status {
		resp.Body.Close()
		t.Fatalf("expected %d, got %d", status, resp.StatusCode)
	}
	var body dto.ErrorResponse
	decode(t, resp, &body)
	if body.Code != code {
		t.Errorf("expected code %q, got %q (%s)", code, body.Code, body.Error)
	}
}

func (ts *testServer) seed(t *testing.T) (resourceID, employeeID int64) {
	t.Helper()
	resourceID = mustPost(t, ts.url("/resources"), map[string]any{"name": "Переговорная №1", "type": "комната", "capacity": 8})
	employeeID = mustPost(t, ts.url("/employees"), map[string]any{"full_name": "Иванов Иван", "email": "ivanov@company.com"})
	return resourceID, employeeID
}

func booking(resourceID, employeeID int64, date, start, end string) map[string]any {
	return map[string]any{
		"resource_id": resourceID,
		"employee_id": employeeID,
		"date":        date,
		"start_time":  start,
		"end_time":    end,
	}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.url("/health"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("expected X-Request-ID header")
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}

func TestCreateEmployee_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := postJSON(ts.url("/employees"), map[string]any{
		"full_name": "Иванов Иван",
		"email":     "Ivanov@Company.com",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	var emp dto.EmployeeResponse
	decode(t, resp, &emp)

	if emp.ID == 0 {
		t.Error("expected non-zero id")
	}
	if emp.Email != "ivanov@company.com" {
		t.Errorf("expected normalized email, got %q", emp.Email)
	}
}

func TestCreateEmployee_Errors(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	mustPost(t, ts.url("/employees"), map[string]any{"full_name": "Иванов Иван", "email": "ivanov@company.com"})

	resp, err := postJSON(ts.url("/employees"), map[string]any{"full_name": "Двойник", "email": "ivanov@company.com"})
	expectError(t, resp, err, http.StatusBadRequest, "duplicate_email")

	resp, err = postJSON(ts.url("/employees"), map[string]any{"full_name": "Без почты", "email": "not-an-email"})
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	resp, err = postJSON(ts.url("/employees"), map[string]any{"full_name": "", "email": "empty@company.com"})
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	resp, err = http.Post(ts.url("/employees"), "application/json", strings.NewReader("{broken"))
	expectError(t, resp, err, http.StatusBadRequest, "invalid_request_body")
}

func TestEmployeeCRUD(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	id := mustPost(t, ts.url("/employees"), map[string]any{"full_name": "Иванов Иван", "email": "ivanov@company.com"})
	itemURL := ts.url("/employees/" + strconv.FormatInt(id, 10))

	resp, err := putJSON(itemURL, map[string]any{"full_name": "Иванов Иван Иванович"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var emp dto.EmployeeResponse
	decode(t, resp, &emp)
	if emp.FullName != "Иванов Иван Иванович" || emp.Email != "ivanov@company.com" {
		t.Errorf("unexpected employee after update: %+v", emp)
	}

	resp, err = http.Get(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &emp)
	if emp.FullName != "Иванов Иван Иванович" {
		t.Errorf("expected persisted update, got %q", emp.FullName)
	}

	resp, err = deleteRequest(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	resp, err = http.Get(itemURL)
	expectError(t, resp, err, http.StatusNotFound, "employee_not_found")

	resp, err = http.Get(ts.url("/employees/abc"))
	expectError(t, resp, err, http.StatusBadRequest, "invalid_id")
}

func TestListEmployees_Pagination(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	for i := 0; i < 5; i++ {
		mustPost(t, ts.url("/employees"), map[string]any{
			"full_name": "Сотрудник " + strconv.Itoa(i),
			"email":     "user" + strconv.Itoa(i) + "@company.com",
		})
	}

	resp, err := http.Get(ts.url("/employees/?skip=1&limit=2"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var page []dto.EmployeeResponse
	decode(t, resp, &page)
	if len(page) != 2 || page[0].Email != "user1@company.com" {
		t.Errorf("unexpected page: %+v", page)
	}

	resp, err = http.Get(ts.url("/employees"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var all []dto.EmployeeResponse
	decode(t, resp, &all)
	if len(all) != 5 {
		t.Errorf("expected 5 employees by default, got %d", len(all))
	}

	resp, err = http.Get(ts.url("/employees?limit=0"))
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	resp, err = http.Get(ts.url("/employees?limit=1001"))
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	resp, err = http.Get(ts.url("/employees?skip=-1"))
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	resp, err = http.Get(ts.url("/employees?skip=abc"))
	expectError(t, resp, err, http.StatusBadRequest, "invalid_query")
}

func TestResourceCRUD(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := postJSON(ts.url("/resources/"), map[string]any{"name": "Проектор", "type": "проектор", "capacity": -1})
	expectError(t, resp, err, http.StatusBadRequest, "validation_error")

	id := mustPost(t, ts.url("/resources/"), map[string]any{"name": "Проектор", "type": "проектор"})
	itemURL := ts.url("/resources/" + strconv.FormatInt(id, 10))

	resp, err = http.Get(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var res dto.ResourceResponse
	decode(t, resp, &res)
	if res.Capacity != nil {
		t.Errorf("expected null capacity, got %v", *res.Capacity)
	}

	resp, err = putJSON(itemURL, map[string]any{"capacity": 4})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &res)
	if res.Capacity == nil || *res.Capacity != 4 || res.Name != "Проектор" {
		t.Errorf("unexpected resource after update: %+v", res)
	}

	resp, err = deleteRequest(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	resp, err = deleteRequest(itemURL)
	expectError(t, resp, err, http.StatusNotFound, "resource_not_found")
}

func TestCreateBooking(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()
	resID, empID := ts.seed(t)

	resp, err := postJSON(ts.url("/bookings"), booking(resID, empID, today, "10:00", "11:00"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	var created dto.BookingResponse
	decode(t, resp, &created)
	if created.StartTime.String() != "10:00:00" || created.Date.String() != today {
		t.Errorf("unexpected booking: %+v", created)
	}

	// смежный интервал
	mustPost(t, ts.url("/bookings/"), booking(resID, empID, today, "11:00:00", "12:00:00"))

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"overlap", booking(resID, empID, today, "10:30", "11:30"), http.StatusConflict, "slot_conflict"},
		{"invalid interval", booking(999, empID, today, "12:00", "11:00"), http.StatusBadRequest, "invalid_interval"},
		{"missing resource", booking(999, empID, today, "13:00", "14:00"), http.StatusNotFound, "resource_not_found"},
		{"missing employee", booking(resID, 999, today, "13:00", "14:00"), http.StatusNotFound, "employee_not_found"},
		{"malformed time", booking(resID, empID, today, "25:00", "26:00"), http.StatusBadRequest, "invalid_request_body"},
		{"malformed date", booking(resID, empID, "10.06.2024", "13:00", "14:00"), http.StatusBadRequest, "invalid_request_body"},
		{"missing date", map[string]any{"resource_id": resID, "employee_id": empID, "start_time": "13:00", "end_time": "14:00"}, http.StatusBadRequest, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := postJSON(ts.url("/bookings"), tt.body)
			expectError(t, resp, err, tt.status, tt.code)
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()
	resID, empID := ts.seed(t)

	id := mustPost(t, ts.url("/bookings"), booking(resID, empID, today, "10:00", "11:00"))
	other := mustPost(t, ts.url("/bookings"), booking(resID, empID, today, "12:00", "13:00"))
	itemURL := ts.url("/bookings/" + strconv.FormatInt(id, 10))

	resp, err := http.Get(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var detail dto.BookingDetailResponse
	decode(t, resp, &detail)
	if detail.Resource == nil || detail.Resource.ID != resID || detail.Employee == nil || detail.Employee.ID != empID {
		t.Errorf("expected nested resource and employee, got %+v", detail)
	}

	// пересечение с собственным интервалом допустимо
	resp, err = putJSON(itemURL, map[string]any{"start_time": "10:30", "end_time": "11:30"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var updated dto.BookingResponse
	decode(t, resp, &updated)
	if updated.StartTime.String() != "10:30:00" || updated.EndTime.String() != "11:30:00" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	resp, err = putJSON(itemURL, map[string]any{"end_time": "12:30"})
	expectError(t, resp, err, http.StatusConflict, "slot_conflict")

	resp, err = putJSON(itemURL, map[string]any{"end_time": "10:00"})
	expectError(t, resp, err, http.StatusBadRequest, "invalid_interval")

	resp, err = putJSON(itemURL, map[string]any{"resource_id": 999})
	expectError(t, resp, err, http.StatusNotFound, "resource_not_found")

	resp, err = putJSON(ts.url("/bookings/999"), map[string]any{"end_time": "12:00"})
	expectError(t, resp, err, http.StatusNotFound, "booking_not_found")

	resp, err = deleteRequest(ts.url("/bookings/" + strconv.FormatInt(other, 10)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	resp, err = deleteRequest(ts.url("/bookings/" + strconv.FormatInt(other, 10)))
	expectError(t, resp, err, http.StatusNotFound, "booking_not_found")
}

func TestBookingQueries(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()
	resID, empID := ts.seed(t)

	mustPost(t, ts.url("/bookings"), booking(resID, empID, today, "14:00", "15:00"))
	mustPost(t, ts.url("/bookings"), booking(resID, empID, today, "09:00", "10:00"))
	mustPost(t, ts.url("/bookings"), booking(resID, empID, "2024-06-11", "09:00", "10:00"))

	var list []dto.BookingDetailResponse

	resp, err := http.Get(ts.url("/bookings/today"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &list)
	if len(list) != 2 || list[0].StartTime.String() != "09:00:00" {
		t.Errorf("expected today's bookings ordered by start time, got %+v", list)
	}

	resp, err = http.Get(ts.url("/bookings/by_resource/" + strconv.FormatInt(resID, 10)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &list)
	if len(list) != 3 {
		t.Errorf("expected 3 bookings for resource, got %d", len(list))
	}

	resp, err = http.Get(ts.url("/bookings/by_employee/" + strconv.FormatInt(empID, 10)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &list)
	if len(list) != 3 {
		t.Errorf("expected 3 bookings for employee, got %d", len(list))
	}

	resp, err = http.Get(ts.url("/bookings/by_resource/999"))
	expectError(t, resp, err, http.StatusNotFound, "resource_not_found")

	resp, err = http.Get(ts.url("/bookings/by_employee/999"))
	expectError(t, resp, err, http.StatusNotFound, "employee_not_found")

	resp, err = http.Get(ts.url("/bookings?limit=2"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decode(t, resp, &list)
	if len(list) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(list))
	}
}

func TestResourceUsageReport(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()
	resID, empID := ts.seed(t)
	projID := mustPost(t, ts.url("/resources"), map[string]any{"name": "Проектор", "type": "проектор"})

	mustPost(t, ts.url("/bookings"), booking(resID, empID, "2024-06-09", "09:00", "10:30"))
	mustPost(t, ts.url("/bookings"), booking(resID, empID, "2024-06-07", "14:00", "15:00"))
	mustPost(t, ts.url("/bookings"), booking(resID, empID, "2024-05-01", "09:00", "18:00"))
	mustPost(t, ts.url("/bookings"), booking(projID, empID, today, "10:00", "10:20"))

	resp, err := http.Get(ts.url("/bookings/report/resource_usage"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report []dto.ResourceUsageResponse
	decode(t, resp, &report)

	if len(report) != 2 {
		t.Fatalf("expected 2 rows, got %+v", report)
	}
	if report[0].ResourceID != resID || report[0].TotalHours != 2.5 {
		t.Errorf("expected room with 2.5 hours first, got %+v", report[0])
	}
	if report[1].ResourceID != projID || report[1].TotalHours != 0.33 {
		t.Errorf("expected projector with 0.33 hours, got %+v", report[1])
	}
}

func TestDeleteResource_CascadesBookings(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()
	resID, empID := ts.seed(t)

	id := mustPost(t, ts.url("/bookings"), booking(resID, empID, today, "10:00", "11:00"))

	resp, err := deleteRequest(ts.url("/resources/" + strconv.FormatInt(resID, 10)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	resp, err = http.Get(ts.url("/bookings/" + strconv.FormatInt(id, 10)))
	expectError(t, resp, err, http.StatusNotFound, "booking_not_found")
}

func TestUnknownPath(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.url("/no/such/page"))
	expectError(t, resp, err, http.StatusNotFound, "not_found")
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	router, _ := newRouter(t, dir)
	server := httptest.NewServer(router.Setup())
	defer server.Close()

	tests := []struct {
		path string
		want string
	}{
		{"/", "<html>app</html>"},
		{"/app.js", "console.log(1)"},
		{"/bookings-calendar/2024-06-10", "<html>app</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
			}
			if string(body) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, body)
			}
		})
	}

	// API по-прежнему доступно
	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func BenchmarkCreateBooking(b *testing.B) {
	router, db := newRouter(b, "")
	server := httptest.NewServer(router.Setup())
	defer server.Close()

	res := testutil.MustCreateResource(b, db, "Переговорная", "комната")
	emp := testutil.MustCreateEmployee(b, db, "Иванов Иван", "ivanov@company.com")
	day := fixedNow

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%20 == 0 {
			day = day.AddDate(0, 0, 1)
		}
		start := 8*60 + (i%20)*30
		body, _ := json.Marshal(booking(res.ID, emp.ID, day.Format("2006-01-02"),
			clockString(start), clockString(start+30)))
		resp, _ := http.Post(server.URL+"/bookings", "application/json", bytes.NewBuffer(body))
		resp.Body.Close()
	}
}

func clockString(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}

func TestUpdateResource_NullCapacity(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	id := mustPost(t, ts.url("/resources"), map[string]any{"name": "Зал", "type": "комната", "capacity": 12})
	itemURL := ts.url("/resources/" + strconv.FormatInt(id, 10))

	// поле отсутствует - вместимость сохраняется
	resp, err := putJSON(itemURL, map[string]any{"type": "проектор"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var res dto.ResourceResponse
	decode(t, resp, &res)
	if res.Capacity == nil || *res.Capacity != 12 {
		t.Fatalf("expected capacity 12 to be kept, got %v", res.Capacity)
	}

	// явный null - вместимость сбрасывается
	resp, err = putJSON(itemURL, map[string]any{"capacity": nil})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	decode(t, resp, &res)
	if res.Capacity != nil {
		t.Errorf("expected null capacity in response, got %d", *res.Capacity)
	}

	resp, err = http.Get(itemURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var stored dto.ResourceResponse
	decode(t, resp, &stored)
	if stored.Capacity != nil || stored.Type != "проектор" {
		t.Errorf("expected stored capacity null and type kept, got %+v", stored)
	}
}

func TestWrongMethodOnKnownPath(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := putJSON(ts.url("/employees"), map[string]any{})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected %d, got %d", http.StatusMethodNotAllowed, resp.StatusCode)
	}
}
