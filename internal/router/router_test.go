package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/app"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/config"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/router"

	"github.com/golang-jwt/jwt/v5"
)

const lunes = "2099-06-08"

// fakeBackend imita la API REST de la clínica con lo mínimo que usa el flujo de agenda.
type fakeBackend struct {
	mu       sync.Mutex
	token    string
	ocupado  bool
	creadas  int
	slotHits int
	meHits   int
	authSeen []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{token: signedToken(t)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secreta123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Credenciales inválidas"}`))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token":   fb.token,
				"usuario": map[string]any{"id": 7, "username": "recepcion", "nombre": "Laura Recepción", "rol": "RECEPCIONISTA"},
			},
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.meHits++
		fb.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+fb.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 7}})
	})
	mux.HandleFunc("GET /v1/configuracion/permisos/rol/{rol}", func(w http.ResponseWriter, r *http.Request) {
		fb.seen(r)
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /v1/configuracion/horarios", func(w http.ResponseWriter, r *http.Request) {
		fb.seen(r)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /citas/horarios-disponibles", func(w http.ResponseWriter, r *http.Request) {
		fb.seen(r)
		fb.mu.Lock()
		fb.slotHits++
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, []map[string]any{
			{"fechaHora": lunes + "T08:00:00", "disponible": true},
			{"fechaHora": lunes + "T08:30:00", "disponible": false},
		})
	})
	mux.HandleFunc("GET /citas/verificar-disponibilidad", func(w http.ResponseWriter, r *http.Request) {
		fb.seen(r)
		fb.mu.Lock()
		libre := !fb.ocupado
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"disponible": libre}})
	})
	mux.HandleFunc("POST /citas", func(w http.ResponseWriter, r *http.Request) {
		fb.seen(r)
		fb.mu.Lock()
		fb.creadas++
		fb.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"id": 55, "fechaHora": lunes + "T08:00:00", "estado": "PROGRAMADA"})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return fb, ts
}

func (fb *fakeBackend) seen(r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.authSeen = append(fb.authSeen, r.Header.Get("Authorization"))
}

func signedToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       7,
		"username": "recepcion",
		"rol":      "ROLE_RECEPCIONISTA",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(claveBackend))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

const claveBackend = "solo-para-tests"

// tokenAjeno imita un JWT armado por alguien sin la clave del backend.
func tokenAjeno(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  7,
		"rol": "ADMIN",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("otra-clave"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newBFF(t *testing.T, apiURL string) *httptest.Server {
	t.Helper()
	return newBFFConSecreto(t, apiURL, "")
}

func newBFFConSecreto(t *testing.T, apiURL, secreto string) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:          secreto,
		APIURL:             apiURL,
		HTTPTimeout:        2 * time.Second,
		Env:                "test",
		CacheBackend:       config.CacheMemory,
		CacheStaleTime:     time.Minute,
		ClinicTimezone:     "UTC",
		AnticipacionMinima: 2 * time.Hour,
		UmbralDuplicados:   0.7,
	}
	a, err := app.New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{App: a}))
	t.Cleanup(ts.Close)
	return ts
}

type toastBody struct {
	Tipo    string `json:"tipo"`
	Mensaje string `json:"mensaje"`
}

type body struct {
	Data    json.RawMessage   `json:"data"`
	Toast   *toastBody        `json:"toast"`
	Errores map[string]string `json:"errores"`
}

func doReq(t *testing.T, baseURL, method, path, token string, payload any) (int, body) {
	t.Helper()

	var rdr io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	var out body
	if len(raw) > 0 && strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, path, err, raw)
		}
	}
	return res.StatusCode, out
}

func login(t *testing.T, bff string) string {
	t.Helper()
	st, b := doReq(t, bff, http.MethodPost, "/sesion/login", "", map[string]string{"username": "recepcion", "password": "secreta123"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", st)
	}
	var data struct {
		Token       string          `json:"token"`
		Capacidades map[string]bool `json:"capacidades"`
	}
	if err := json.Unmarshal(b.Data, &data); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if data.Token == "" || !data.Capacidades["citas:crear"] {
		t.Fatalf("unexpected login data: %+v", data)
	}
	return data.Token
}

func TestHTTP_EndToEnd_AgendarCita(t *testing.T) {
	fb, api := newFakeBackend(t)
	bff := newBFF(t, api.URL)

	if st, _ := doReq(t, bff.URL, http.MethodGet, "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 on health, got %d", st)
	}

	// 1) Credenciales malas => 401 con toast de error
	{
		st, b := doReq(t, bff.URL, http.MethodPost, "/sesion/login", "", map[string]string{"username": "recepcion", "password": "x"})
		if st != http.StatusUnauthorized || b.Toast == nil || b.Toast.Tipo != "error" {
			t.Fatalf("expected 401 with error toast, got %d %+v", st, b.Toast)
		}
	}

	token := login(t, bff.URL)

	// 2) Sin token no hay vistas
	if st, _ := doReq(t, bff.URL, http.MethodGet, "/agenda/horarios?veterinarioId=3&fecha="+lunes, "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", st)
	}

	// 3) Recepción no administra usuarios
	if st, _ := doReq(t, bff.URL, http.MethodGet, "/usuarios", token, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 on /usuarios, got %d", st)
	}

	// 4) Horarios: un slot libre en la mañana y uno ocupado
	{
		st, b := doReq(t, bff.URL, http.MethodGet, "/agenda/horarios?veterinarioId=3&fecha="+lunes, token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on horarios, got %d", st)
		}
		var vista struct {
			Estado string `json:"estado"`
			Grupos []struct {
				Nombre string `json:"nombre"`
				Slots  []struct {
					Hora          string `json:"hora"`
					Etiqueta      string `json:"etiqueta"`
					Seleccionable bool   `json:"seleccionable"`
				} `json:"slots"`
			} `json:"grupos"`
		}
		if err := json.Unmarshal(b.Data, &vista); err != nil {
			t.Fatalf("decode vista: %v", err)
		}
		if vista.Estado != "LISTA" || len(vista.Grupos) != 2 {
			t.Fatalf("unexpected vista: %+v", vista)
		}
		manana := vista.Grupos[0].Slots
		if len(manana) != 2 || !manana[0].Seleccionable || manana[1].Seleccionable || manana[1].Etiqueta != "Ocupado" {
			t.Fatalf("unexpected morning slots: %+v", manana)
		}
		if len(vista.Grupos[1].Slots) != 0 {
			t.Fatalf("expected empty afternoon, got %+v", vista.Grupos[1].Slots)
		}
	}

	cita := map[string]any{
		"pacienteId":    12,
		"veterinarioId": 3,
		"fechaHora":     lunes + "T08:00",
		"tipoServicio":  "CONSULTA",
		"motivo":        "Control anual",
	}

	// 5) Domingo => advertencia 422, no llega al backend
	{
		domingo := map[string]any{}
		for k, v := range cita {
			domingo[k] = v
		}
		domingo["fechaHora"] = "2099-06-07T10:00"
		st, b := doReq(t, bff.URL, http.MethodPost, "/agenda/agendar", token, domingo)
		if st != http.StatusUnprocessableEntity || b.Toast == nil || b.Toast.Tipo != "warning" {
			t.Fatalf("expected 422 warning on sunday, got %d %+v", st, b.Toast)
		}
	}

	// 6) El servidor dice ocupado => 409, nada creado, slots siguen cacheados
	fb.mu.Lock()
	fb.ocupado = true
	fb.mu.Unlock()
	if st, _ := doReq(t, bff.URL, http.MethodPost, "/agenda/agendar", token, cita); st != http.StatusConflict {
		t.Fatalf("expected 409 when slot taken, got %d", st)
	}
	doReq(t, bff.URL, http.MethodGet, "/agenda/horarios?veterinarioId=3&fecha="+lunes, token, nil)

	// 7) Libre => 201 y los slots se vuelven a pedir
	fb.mu.Lock()
	fb.ocupado = false
	fb.mu.Unlock()
	{
		st, b := doReq(t, bff.URL, http.MethodPost, "/agenda/agendar", token, cita)
		if st != http.StatusCreated || b.Toast == nil || b.Toast.Tipo != "success" {
			t.Fatalf("expected 201 with success toast, got %d %+v", st, b.Toast)
		}
	}
	doReq(t, bff.URL, http.MethodGet, "/agenda/horarios?veterinarioId=3&fecha="+lunes, token, nil)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.creadas != 1 {
		t.Fatalf("expected exactly one cita created, got %d", fb.creadas)
	}
	if fb.slotHits != 2 {
		t.Fatalf("expected slots fetched twice (before and after booking), got %d", fb.slotHits)
	}
	for _, h := range fb.authSeen {
		if h != "Bearer "+fb.token {
			t.Fatalf("backend call without user token: %q", h)
		}
	}
}

func TestHTTP_MeYMetricas(t *testing.T) {
	_, api := newFakeBackend(t)
	bff := newBFF(t, api.URL)
	token := login(t, bff.URL)

	st, b := doReq(t, bff.URL, http.MethodGet, "/sesion/me", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on me, got %d", st)
	}
	var me struct {
		Usuario struct {
			ID  string `json:"id"`
			Rol string `json:"rol"`
		} `json:"usuario"`
	}
	if err := json.Unmarshal(b.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Usuario.ID != "7" || me.Usuario.Rol != "RECEPCIONISTA" {
		t.Fatalf("unexpected me: %+v", me)
	}

	res, err := http.Get(bff.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(raw), "vetclinic_api_requests_total") {
		t.Fatalf("expected api metrics exposed, got:\n%s", raw)
	}
}

func (fb *fakeBackend) contadores() (slotHits, meHits int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.slotHits, fb.meHits
}

func TestHTTP_TokenConOtraClaveNoLeeElCache(t *testing.T) {
	fb, api := newFakeBackend(t)
	bff := newBFF(t, api.URL)
	token := login(t, bff.URL)

	horarios := "/agenda/horarios?veterinarioId=3&fecha=" + lunes
	if st, _ := doReq(t, bff.URL, http.MethodGet, horarios, token, nil); st != http.StatusOK {
		t.Fatalf("expected 200 on horarios, got %d", st)
	}
	slots, me := fb.contadores()
	if slots != 1 || me != 0 {
		t.Fatalf("expected one slot fetch and no extra confirmation after login, got slots=%d me=%d", slots, me)
	}

	ajeno := tokenAjeno(t)
	st, b := doReq(t, bff.URL, http.MethodGet, horarios, ajeno, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token not accepted by the backend, got %d data=%s", st, b.Data)
	}
	if st, _ := doReq(t, bff.URL, http.MethodGet, "/usuarios", ajeno, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 on /usuarios, got %d", st)
	}

	slots, me = fb.contadores()
	if slots != 1 {
		t.Fatalf("expected no slot fetch for the rejected token, got %d", slots)
	}
	if me != 2 {
		t.Fatalf("expected the backend to be asked once per rejected request, got %d", me)
	}

	// El token legítimo sigue sirviéndose del cache sin volver a confirmar.
	if st, _ := doReq(t, bff.URL, http.MethodGet, horarios, token, nil); st != http.StatusOK {
		t.Fatalf("expected 200 on horarios, got %d", st)
	}
	slots, me = fb.contadores()
	if slots != 1 || me != 2 {
		t.Fatalf("expected cached slots for the real session, got slots=%d me=%d", slots, me)
	}
}

func TestHTTP_ConSecretoLaFirmaSeVerificaLocalmente(t *testing.T) {
	fb, api := newFakeBackend(t)
	bff := newBFFConSecreto(t, api.URL, claveBackend)

	horarios := "/agenda/horarios?veterinarioId=3&fecha=" + lunes
	if st, _ := doReq(t, bff.URL, http.MethodGet, horarios, fb.token, nil); st != http.StatusOK {
		t.Fatalf("expected 200 with a backend-signed token, got %d", st)
	}
	if st, _ := doReq(t, bff.URL, http.MethodGet, horarios, tokenAjeno(t), nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a foreign signature, got %d", st)
	}

	slots, me := fb.contadores()
	if slots != 1 || me != 0 {
		t.Fatalf("expected local verification only, got slots=%d me=%d", slots, me)
	}
}
