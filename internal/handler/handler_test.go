package handler

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/model"
    "github.com/iliyamo/hotel-front-desk/internal/repository"
    "github.com/iliyamo/hotel-front-desk/internal/service"
)

func day(s string) time.Time {
    t, err := time.Parse(dateLayout, s)
    if err != nil {
        panic(err)
    }
    return t
}

// ----- fakes -----

type fakeGuests struct {
    rows     map[uint64]model.Guest
    searched string
}

func (f *fakeGuests) Create(_ context.Context, g *model.Guest) error {
    g.ID = uint64(len(f.rows) + 1)
    f.rows[g.ID] = *g
    return nil
}
func (f *fakeGuests) GetByID(_ context.Context, id uint64) (model.Guest, error) {
    g, ok := f.rows[id]
    if !ok {
        return g, repository.ErrNotFound
    }
    return g, nil
}
func (f *fakeGuests) List(context.Context) ([]model.Guest, error) {
    out := []model.Guest{}
    for _, g := range f.rows {
        out = append(out, g)
    }
    return out, nil
}
func (f *fakeGuests) Search(_ context.Context, term string) ([]model.Guest, error) {
    f.searched = term
    return []model.Guest{}, nil
}
func (f *fakeGuests) Update(_ context.Context, g model.Guest) error {
    if _, ok := f.rows[g.ID]; !ok {
        return repository.ErrNotFound
    }
    f.rows[g.ID] = g
    return nil
}
func (f *fakeGuests) Delete(_ context.Context, id uint64) error {
    if _, ok := f.rows[id]; !ok {
        return repository.ErrNotFound
    }
    delete(f.rows, id)
    return nil
}

type fakeRooms struct {
    rows map[uint64]model.Room
}

func (f *fakeRooms) Create(_ context.Context, rm *model.Room) error {
    rm.ID = uint64(len(f.rows) + 1)
    f.rows[rm.ID] = *rm
    return nil
}
func (f *fakeRooms) GetByID(_ context.Context, id uint64) (model.Room, error) {
    rm, ok := f.rows[id]
    if !ok {
        return rm, repository.ErrNotFound
    }
    return rm, nil
}
func (f *fakeRooms) List(_ context.Context, status model.RoomStatus) ([]model.Room, error) {
    out := []model.Room{}
    for _, rm := range f.rows {
        if status == "" || rm.Status == status {
            out = append(out, rm)
        }
    }
    return out, nil
}
func (f *fakeRooms) Update(_ context.Context, rm model.Room) error {
    if _, ok := f.rows[rm.ID]; !ok {
        return repository.ErrNotFound
    }
    f.rows[rm.ID] = rm
    return nil
}
func (f *fakeRooms) SetStatus(_ context.Context, id uint64, st model.RoomStatus) error {
    rm, ok := f.rows[id]
    if !ok {
        return repository.ErrNotFound
    }
    rm.Status = st
    f.rows[id] = rm
    return nil
}
func (f *fakeRooms) Delete(_ context.Context, id uint64) error {
    delete(f.rows, id)
    return nil
}
func (f *fakeRooms) NumberExists(_ context.Context, number string, excludeID uint64) (bool, error) {
    for _, rm := range f.rows {
        if rm.Number == number && rm.ID != excludeID {
            return true, nil
        }
    }
    return false, nil
}
func (f *fakeRooms) Numbers(context.Context) ([]int, error) {
    var out []int
    for _, rm := range f.rows {
        var n int
        fmt.Sscan(rm.Number, &n)
        out = append(out, n)
    }
    return out, nil
}

type fakeReservations struct {
    rows map[uint64]model.Reservation
}

func (f *fakeReservations) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
    r, ok := f.rows[id]
    if !ok {
        return r, repository.ErrNotFound
    }
    return r, nil
}
func (f *fakeReservations) List(_ context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
    out := []model.Reservation{}
    for _, r := range f.rows {
        if status == "" || r.Status == status {
            out = append(out, r)
        }
    }
    return out, nil
}
func (f *fakeReservations) PendingCheckIns(ctx context.Context) ([]model.Reservation, error) {
    return f.List(ctx, model.StatusBooked)
}
func (f *fakeReservations) CheckedIn(ctx context.Context) ([]model.Reservation, error) {
    return f.List(ctx, model.StatusCheckedIn)
}

type fakePayments struct {
    from, to time.Time
    lines    []repository.PaymentLine
}

func (f *fakePayments) ListByReservation(_ context.Context, id uint64) ([]model.Payment, error) {
    return []model.Payment{{ID: 1, ReservationID: id, AmountCents: 100, Method: model.MethodCash, Status: model.PaymentPaid}}, nil
}
func (f *fakePayments) ListBetween(_ context.Context, from, to time.Time) ([]repository.PaymentLine, error) {
    f.from, f.to = from, to
    return f.lines, nil
}

// fakeDesk records the arguments it was called with and returns err.
type fakeDesk struct {
    err       error
    available bool

    guestID, roomID uint64
    in, out         time.Time
    status          model.ReservationStatus
    amount          int64
    method          model.PaymentMethod
}

func (d *fakeDesk) IsAvailable(_ context.Context, roomID uint64, in, out time.Time, _ uint64) (bool, error) {
    d.roomID, d.in, d.out = roomID, in, out
    return d.available, d.err
}
func (d *fakeDesk) Create(_ context.Context, guestID, roomID uint64, in, out time.Time) (model.Reservation, error) {
    d.guestID, d.roomID, d.in, d.out = guestID, roomID, in, out
    if d.err != nil {
        return model.Reservation{}, d.err
    }
    return model.Reservation{ID: 9, GuestID: guestID, RoomID: roomID, CheckIn: in, CheckOut: out, Status: model.StatusBooked, PriceCents: 1000}, nil
}
func (d *fakeDesk) Update(_ context.Context, id, guestID, roomID uint64, in, out time.Time, st model.ReservationStatus) (model.Reservation, error) {
    d.guestID, d.roomID, d.in, d.out, d.status = guestID, roomID, in, out, st
    return model.Reservation{ID: id, GuestID: guestID, RoomID: roomID, CheckIn: in, CheckOut: out, Status: st}, d.err
}
func (d *fakeDesk) CheckIn(_ context.Context, _, roomID uint64) error {
    d.roomID = roomID
    return d.err
}
func (d *fakeDesk) CheckOut(_ context.Context, id, roomID uint64, amount int64, method model.PaymentMethod) (model.Payment, error) {
    d.roomID, d.amount, d.method = roomID, amount, method
    return model.Payment{ReservationID: id, AmountCents: amount, Method: method, Status: model.PaymentPaid}, d.err
}
func (d *fakeDesk) Cancel(_ context.Context, _, roomID uint64) error {
    d.roomID = roomID
    return d.err
}
func (d *fakeDesk) Delete(context.Context, uint64) error { return d.err }

// ----- helpers -----

func newEcho() *echo.Echo {
    e := echo.New()
    e.Validator = NewValidator()
    return e
}

func call(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, path, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, path, nil)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
    t.Helper()
    if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
        t.Fatalf("decode %q: %v", rec.Body.String(), err)
    }
}

// ----- tests -----

func TestStatusFor(t *testing.T) {
    cases := []struct {
        err  error
        want int
    }{
        {&service.ValidationError{Reason: "bad"}, http.StatusBadRequest},
        {fmt.Errorf("reservation 3: %w", repository.ErrNotFound), http.StatusNotFound},
        {service.ErrRoomUnavailable, http.StatusConflict},
        {fmt.Errorf("x: %w", service.ErrInvalidTransition), http.StatusConflict},
        {fmt.Errorf("%w: dup", repository.ErrDuplicate), http.StatusConflict},
        {repository.ErrConflict, http.StatusConflict},
        {repository.ErrInvalidReference, http.StatusBadRequest},
        {errors.New("driver: bad connection"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        if got, _ := statusFor(tc.err); got != tc.want {
            t.Errorf("%v: got %d, want %d", tc.err, got, tc.want)
        }
    }
    if _, msg := statusFor(errors.New("driver: secret detail")); msg != "internal error" {
        t.Errorf("internal error leaked %q", msg)
    }
}

func TestGuestEndpoints(t *testing.T) {
    guests := &fakeGuests{rows: map[uint64]model.Guest{}}
    h := NewGuestHandler(guests)
    e := newEcho()
    e.GET("/v1/guests", h.List)
    e.POST("/v1/guests", h.Create)
    e.PUT("/v1/guests/:id", h.Update)
    e.DELETE("/v1/guests/:id", h.Delete)

    if rec := call(e, http.MethodPost, "/v1/guests", `{"name":"Ana"}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("missing contact: want 400, got %d", rec.Code)
    }
    if rec := call(e, http.MethodPost, "/v1/guests", `{"name":"Ana","contact_number":"1","email":"nope"}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad email: want 400, got %d", rec.Code)
    }
    rec := call(e, http.MethodPost, "/v1/guests", `{"name":"  Ana Cruz ","contact_number":"+639170000000"}`)
    if rec.Code != http.StatusCreated {
        t.Fatalf("create: want 201, got %d %s", rec.Code, rec.Body.String())
    }
    var g model.Guest
    decode(t, rec, &g)
    if g.ID == 0 || g.Name != "Ana Cruz" {
        t.Fatalf("created guest = %+v", g)
    }

    call(e, http.MethodGet, "/v1/guests?q=ana", "")
    if guests.searched != "ana" {
        t.Fatalf("search term = %q", guests.searched)
    }
    if rec := call(e, http.MethodPut, "/v1/guests/99", `{"name":"X","contact_number":"1"}`); rec.Code != http.StatusNotFound {
        t.Fatalf("update missing: want 404, got %d", rec.Code)
    }
    if rec := call(e, http.MethodDelete, "/v1/guests/abc", ""); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad id: want 400, got %d", rec.Code)
    }
}

func TestRoomEndpoints(t *testing.T) {
    rooms := &fakeRooms{rows: map[uint64]model.Room{}}
    h := NewRoomHandler(rooms)
    e := newEcho()
    e.GET("/v1/rooms/next-number", h.NextNumber)
    e.POST("/v1/rooms", h.Create)
    e.PATCH("/v1/rooms/:id/status", h.SetStatus)

    rec := call(e, http.MethodPost, "/v1/rooms", `{"room_number":"007","type":"suite"}`)
    if rec.Code != http.StatusCreated {
        t.Fatalf("create: want 201, got %d %s", rec.Code, rec.Body.String())
    }
    var rm model.Room
    decode(t, rec, &rm)
    if rm.Number != "7" || rm.Type != model.RoomTypeSuite || rm.PriceCents != 400000 || rm.Status != model.RoomAvailable {
        t.Fatalf("created room = %+v", rm)
    }

    if rec := call(e, http.MethodPost, "/v1/rooms", `{"room_number":"7","type":"Single Room"}`); rec.Code != http.StatusConflict {
        t.Fatalf("duplicate number: want 409, got %d", rec.Code)
    }
    if rec := call(e, http.MethodPost, "/v1/rooms", `{"room_number":"201","type":"Single Room"}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("out of range: want 400, got %d", rec.Code)
    }

    rec = call(e, http.MethodGet, "/v1/rooms/next-number", "")
    var next map[string]string
    decode(t, rec, &next)
    if next["room_number"] != "8" {
        t.Fatalf("next number = %q", next["room_number"])
    }

    if rec := call(e, http.MethodPatch, fmt.Sprintf("/v1/rooms/%d/status", rm.ID), `{"status":"maintenance"}`); rec.Code != http.StatusOK {
        t.Fatalf("set status: want 200, got %d", rec.Code)
    }
    if rooms.rows[rm.ID].Status != model.RoomMaintenance {
        t.Fatalf("status = %s", rooms.rows[rm.ID].Status)
    }
    if rec := call(e, http.MethodPatch, fmt.Sprintf("/v1/rooms/%d/status", rm.ID), `{"status":"broken"}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad status: want 400, got %d", rec.Code)
    }
}

func newReservationServer(desk *fakeDesk, res *fakeReservations, pay *fakePayments) *echo.Echo {
    h := NewReservationHandler(desk, res, pay)
    e := newEcho()
    e.GET("/v1/reservations/:id", h.Get)
    e.POST("/v1/reservations", h.Create)
    e.PUT("/v1/reservations/:id", h.Update)
    e.POST("/v1/reservations/:id/check-in", h.CheckIn)
    e.POST("/v1/reservations/:id/check-out", h.CheckOut)
    e.POST("/v1/reservations/:id/cancel", h.Cancel)
    e.GET("/v1/reservations/:id/payments", h.PaymentHistory)
    e.GET("/v1/check-outs", h.CheckOuts)
    e.GET("/v1/availability", h.Availability)
    return e
}

func TestCreateReservation(t *testing.T) {
    desk := &fakeDesk{}
    e := newReservationServer(desk, &fakeReservations{rows: map[uint64]model.Reservation{}}, &fakePayments{})

    rec := call(e, http.MethodPost, "/v1/reservations", `{"guest_id":1,"room_id":2,"check_in":"2024-01-01","check_out":"2024-01-04"}`)
    if rec.Code != http.StatusCreated {
        t.Fatalf("create: want 201, got %d %s", rec.Code, rec.Body.String())
    }
    if desk.guestID != 1 || desk.roomID != 2 || !desk.in.Equal(day("2024-01-01")) || !desk.out.Equal(day("2024-01-04")) {
        t.Fatalf("desk called with %+v", desk)
    }
    var res model.Reservation
    decode(t, rec, &res)
    if res.Nights != 3 || res.TotalCents != 3000 {
        t.Fatalf("nights/total = %d/%d", res.Nights, res.TotalCents)
    }

    if rec := call(e, http.MethodPost, "/v1/reservations", `{"guest_id":1,"room_id":2,"check_in":"01/01/2024","check_out":"2024-01-04"}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad date: want 400, got %d", rec.Code)
    }

    desk.err = service.ErrRoomUnavailable
    if rec := call(e, http.MethodPost, "/v1/reservations", `{"guest_id":1,"room_id":2,"check_in":"2024-01-02","check_out":"2024-01-03"}`); rec.Code != http.StatusConflict {
        t.Fatalf("overlap: want 409, got %d", rec.Code)
    }
}

func TestUpdateKeepsStatusWhenOmitted(t *testing.T) {
    desk := &fakeDesk{}
    res := &fakeReservations{rows: map[uint64]model.Reservation{
        4: {ID: 4, Status: model.StatusCheckedIn},
    }}
    e := newReservationServer(desk, res, &fakePayments{})

    rec := call(e, http.MethodPut, "/v1/reservations/4", `{"guest_id":1,"room_id":2,"check_in":"2024-01-01","check_out":"2024-01-05"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("update: want 200, got %d %s", rec.Code, rec.Body.String())
    }
    if desk.status != model.StatusCheckedIn {
        t.Fatalf("status passed = %s", desk.status)
    }

    call(e, http.MethodPut, "/v1/reservations/4", `{"guest_id":1,"room_id":2,"check_in":"2024-01-01","check_out":"2024-01-05","status":"Checked Out"}`)
    if desk.status != model.StatusCheckedOut {
        t.Fatalf("explicit status passed = %s", desk.status)
    }
}

func TestCheckOutDefaultsAmountToStayTotal(t *testing.T) {
    desk := &fakeDesk{}
    res := &fakeReservations{rows: map[uint64]model.Reservation{
        5: {ID: 5, RoomID: 2, CheckIn: day("2024-01-01"), CheckOut: day("2024-01-04"), Status: model.StatusCheckedIn, PriceCents: 1000},
    }}
    e := newReservationServer(desk, res, &fakePayments{})

    rec := call(e, http.MethodPost, "/v1/reservations/5/check-out", `{"method":"Cash"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("check-out: want 200, got %d %s", rec.Code, rec.Body.String())
    }
    if desk.amount != 3000 || desk.method != model.MethodCash {
        t.Fatalf("amount/method = %d/%s", desk.amount, desk.method)
    }

    call(e, http.MethodPost, "/v1/reservations/5/check-out", `{"method":"Card","amount_cents":0,"room_id":2}`)
    if desk.amount != 0 || desk.roomID != 2 {
        t.Fatalf("explicit zero amount = %d room %d", desk.amount, desk.roomID)
    }

    if rec := call(e, http.MethodPost, "/v1/reservations/5/check-out", `{}`); rec.Code != http.StatusBadRequest {
        t.Fatalf("missing method: want 400, got %d", rec.Code)
    }
    if rec := call(e, http.MethodPost, "/v1/reservations/77/check-out", `{"method":"Cash"}`); rec.Code != http.StatusNotFound {
        t.Fatalf("unknown reservation: want 404, got %d", rec.Code)
    }
}

func TestCheckInAndCancelRejectMalformedBody(t *testing.T) {
    desk := &fakeDesk{roomID: 42}
    e := newReservationServer(desk, &fakeReservations{rows: map[uint64]model.Reservation{}}, &fakePayments{})

    for _, path := range []string{"/v1/reservations/5/check-in", "/v1/reservations/5/cancel"} {
        rec := call(e, http.MethodPost, path, `{"room_id":`)
        if rec.Code != http.StatusBadRequest || desk.roomID != 42 {
            t.Fatalf("%s malformed body: got %d, desk room %d", path, rec.Code, desk.roomID)
        }
    }
    if rec := call(e, http.MethodPost, "/v1/reservations/5/check-in", ""); rec.Code != http.StatusOK || desk.roomID != 0 {
        t.Fatalf("empty body: got %d, desk room %d", rec.Code, desk.roomID)
    }
}

func TestTransitionsMapErrors(t *testing.T) {
    desk := &fakeDesk{err: fmt.Errorf("reservation 5 is CheckedOut: %w", service.ErrInvalidTransition)}
    e := newReservationServer(desk, &fakeReservations{rows: map[uint64]model.Reservation{}}, &fakePayments{})

    if rec := call(e, http.MethodPost, "/v1/reservations/5/check-in", ""); rec.Code != http.StatusConflict {
        t.Fatalf("check-in: want 409, got %d", rec.Code)
    }
    desk.err = &service.ValidationError{Reason: "reservation 5 is for room 2, not 3"}
    rec := call(e, http.MethodPost, "/v1/reservations/5/cancel", `{"room_id":3}`)
    if rec.Code != http.StatusBadRequest || desk.roomID != 3 {
        t.Fatalf("cancel mismatch: got %d room %d", rec.Code, desk.roomID)
    }
}

func TestCheckOutsCarryTotals(t *testing.T) {
    res := &fakeReservations{rows: map[uint64]model.Reservation{
        1: {ID: 1, CheckIn: day("2024-01-01"), CheckOut: day("2024-01-02"), Status: model.StatusCheckedIn, PriceCents: 1500},
        2: {ID: 2, CheckIn: day("2024-01-01"), CheckOut: day("2024-01-02"), Status: model.StatusBooked, PriceCents: 1500},
    }}
    e := newReservationServer(&fakeDesk{}, res, &fakePayments{})

    rec := call(e, http.MethodGet, "/v1/check-outs", "")
    var out []model.Reservation
    decode(t, rec, &out)
    if len(out) != 1 || out[0].TotalCents != 1500 || out[0].Nights != 1 {
        t.Fatalf("check-outs = %+v", out)
    }
}

func TestAvailability(t *testing.T) {
    desk := &fakeDesk{available: true}
    e := newReservationServer(desk, &fakeReservations{}, &fakePayments{})

    if rec := call(e, http.MethodGet, "/v1/availability?check_in=2024-01-01&check_out=2024-01-02", ""); rec.Code != http.StatusBadRequest {
        t.Fatalf("missing room: want 400, got %d", rec.Code)
    }
    rec := call(e, http.MethodGet, "/v1/availability?room_id=3&check_in=2024-01-01&check_out=2024-01-02", "")
    var body map[string]interface{}
    decode(t, rec, &body)
    if rec.Code != http.StatusOK || body["available"] != true || desk.roomID != 3 {
        t.Fatalf("availability: %d %v", rec.Code, body)
    }

    desk.err = &service.ValidationError{Reason: "check-out date must be after check-in date"}
    if rec := call(e, http.MethodGet, "/v1/availability?room_id=3&check_in=2024-01-02&check_out=2024-01-02", ""); rec.Code != http.StatusBadRequest {
        t.Fatalf("empty range: want 400, got %d", rec.Code)
    }
}

func TestPaymentHistory(t *testing.T) {
    res := &fakeReservations{rows: map[uint64]model.Reservation{5: {ID: 5}}}
    e := newReservationServer(&fakeDesk{}, res, &fakePayments{})

    rec := call(e, http.MethodGet, "/v1/reservations/5/payments", "")
    var out []model.Payment
    decode(t, rec, &out)
    if len(out) != 1 || out[0].ReservationID != 5 {
        t.Fatalf("payments = %+v", out)
    }
    if rec := call(e, http.MethodGet, "/v1/reservations/6/payments", ""); rec.Code != http.StatusNotFound {
        t.Fatalf("unknown reservation: want 404, got %d", rec.Code)
    }
}

func TestQuote(t *testing.T) {
    rooms := &fakeRooms{rows: map[uint64]model.Room{1: {ID: 1, PriceCents: 1200}}}
    h := NewQuoteHandler(rooms)
    e := newEcho()
    e.GET("/v1/quote", h.Quote)

    rec := call(e, http.MethodGet, "/v1/quote?room_id=1&check_in=2024-01-01&check_out=2024-01-03", "")
    var q struct {
        Nights     int   `json:"nights"`
        TotalCents int64 `json:"total_cents"`
    }
    decode(t, rec, &q)
    if q.Nights != 2 || q.TotalCents != 2400 {
        t.Fatalf("room quote = %+v", q)
    }

    rec = call(e, http.MethodGet, "/v1/quote?type=Double%20Room&check_in=2024-01-03&check_out=2024-01-01", "")
    decode(t, rec, &q)
    if q.Nights != 0 || q.TotalCents != 0 {
        t.Fatalf("inverted range quote = %+v", q)
    }
    if rec := call(e, http.MethodGet, "/v1/quote?check_in=2024-01-01&check_out=2024-01-03", ""); rec.Code != http.StatusBadRequest {
        t.Fatalf("no room or type: want 400, got %d", rec.Code)
    }
}

func TestPaymentsReport(t *testing.T) {
    pay := &fakePayments{lines: []repository.PaymentLine{{
        Payment:    model.Payment{ID: 1, ReservationID: 2, AmountCents: 3000, Method: model.MethodCard, PaidAt: day("2024-01-04"), Status: model.PaymentPaid},
        GuestName:  "Ana",
        RoomNumber: "7",
        CheckIn:    day("2024-01-01"),
        CheckOut:   day("2024-01-04"),
    }}}
    h := NewReportHandler(pay)
    e := newEcho()
    e.GET("/v1/reports/payments.xlsx", h.PaymentsXLSX)

    rec := call(e, http.MethodGet, "/v1/reports/payments.xlsx?from=2024-01-01&to=2024-01-31", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("report: want 200, got %d %s", rec.Code, rec.Body.String())
    }
    if rec.Header().Get(echo.HeaderContentType) != xlsxMIME {
        t.Fatalf("content type = %q", rec.Header().Get(echo.HeaderContentType))
    }
    if !pay.from.Equal(day("2024-01-01")) || !pay.to.Equal(day("2024-02-01")) {
        t.Fatalf("range = %s..%s", pay.from, pay.to)
    }
    // xlsx files are zip archives
    if !strings.HasPrefix(rec.Body.String(), "PK") {
        t.Fatal("body is not an xlsx archive")
    }

    if rec := call(e, http.MethodGet, "/v1/reports/payments.xlsx?from=2024-02-01&to=2024-01-01", ""); rec.Code != http.StatusBadRequest {
        t.Fatalf("inverted range: want 400, got %d", rec.Code)
    }
}
