package mockcatalog

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/framework"
)

// Service is a stateful mock of the validation service. Seed it with
// AddModel/AddTest/AddObservation, mount it on an httptest.Server, and point
// a catalog.Client at Environment().
type Service struct {
	models        []catalog.Model
	modelDetails  map[string][]catalog.ModelInstance
	tests         []catalog.TestDefinition
	testInstances map[string][]catalog.TestInstance
	results       []catalog.Result
	observations  map[string][]byte
	handler       http.Handler
	debugLogger   framework.Logger
	lock          sync.RWMutex
}

// NewService creates an empty mock service. The logger may be nil.
func NewService(debugLogger framework.Logger) *Service {
	s := &Service{
		modelDetails:  make(map[string][]catalog.ModelInstance),
		testInstances: make(map[string][]catalog.TestInstance),
		observations:  make(map[string][]byte),
		debugLogger:   framework.OrNull(debugLogger),
	}

	router := mux.NewRouter()
	router.HandleFunc("/auth/token", s.serveToken).Methods("POST")
	router.HandleFunc("/api/models", s.serveModels).Methods("GET")
	router.HandleFunc("/api/models", s.serveRegisterModel).Methods("POST")
	router.HandleFunc("/api/models/{id}", s.serveEditModel).Methods("PUT")
	router.HandleFunc("/api/models/instances", s.serveModelInstances).Methods("GET")
	router.HandleFunc("/api/models/instances", s.serveRegisterModelInstance).Methods("POST")
	router.HandleFunc("/api/tests", s.serveTests).Methods("GET")
	router.HandleFunc("/api/tests", s.serveRegisterTest).Methods("POST")
	router.HandleFunc("/api/tests/instances", s.serveTestInstances).Methods("GET")
	router.HandleFunc("/api/results", s.serveResults).Methods("GET")
	router.HandleFunc("/api/results", s.serveRegisterResult).Methods("POST")
	router.HandleFunc("/api/storage", s.serveStorage).Methods("GET")
	router.HandleFunc("/data/{name}", s.serveObservation).Methods("GET")
	s.handler = router

	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.debugLogger.Printf("mock catalog: %s %s", r.Method, r.URL)
	s.handler.ServeHTTP(w, r)
}

// Environment builds a catalog.Environment pointing at a server that is
// serving this Service.
func (s *Service) Environment(baseURL string) catalog.Environment {
	return catalog.Environment{
		Name:       "mock",
		ServiceURL: baseURL + "/api",
		AuthURL:    baseURL + "/auth",
	}
}

// AddModel seeds a model (with any embedded instances), assigning IDs where
// missing. Returns the stored copy.
func (s *Service) AddModel(model catalog.Model) catalog.Model {
	s.lock.Lock()
	defer s.lock.Unlock()
	if model.ID == "" {
		model.ID = newID()
	}
	instances := model.Instances
	model.Instances = nil
	for i := range instances {
		if instances[i].ID == "" {
			instances[i].ID = newID()
		}
		instances[i].ModelID = model.ID
	}
	s.models = append(s.models, model)
	s.modelDetails[model.ID] = instances
	model.Instances = instances
	return model
}

// AddTest seeds a test definition with its instances, assigning IDs where
// missing. Returns the stored copy.
func (s *Service) AddTest(test catalog.TestDefinition) catalog.TestDefinition {
	s.lock.Lock()
	defer s.lock.Unlock()
	if test.ID == "" {
		test.ID = newID()
	}
	instances := test.Instances
	test.Instances = nil
	for i := range instances {
		if instances[i].ID == "" {
			instances[i].ID = newID()
		}
		instances[i].TestID = test.ID
	}
	s.tests = append(s.tests, test)
	s.testInstances[test.ID] = instances
	test.Instances = instances
	return test
}

// AddObservation registers payload bytes to be served at /data/<name>.
func (s *Service) AddObservation(name string, content []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.observations[name] = content
}

// Results returns a copy of all registered results.
func (s *Service) Results() []catalog.Result {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]catalog.Result(nil), s.results...)
}

func (s *Service) serveToken(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" {
		http.Error(w, "invalid credentials payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"access_token": "mock-token-" + creds.Username})
}

func (s *Service) serveModels(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	query := r.URL.Query()
	var matches []catalog.Model
	for _, m := range s.models {
		if id := query.Get("id"); id != "" && m.ID != id {
			continue
		}
		if alias := query.Get("alias"); alias != "" && m.Alias != alias {
			continue
		}
		if name := query.Get("name"); name != "" && m.Name != name {
			continue
		}
		if collab := query.Get("collab_id"); collab != "" && m.CollabID != collab {
			continue
		}
		m.Instances = append([]catalog.ModelInstance(nil), s.modelDetails[m.ID]...)
		matches = append(matches, m)
	}
	writeJSON(w, matches)
}

func (s *Service) serveRegisterModel(w http.ResponseWriter, r *http.Request) {
	var model catalog.Model
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "invalid model payload", http.StatusBadRequest)
		return
	}
	created := s.AddModel(model)
	writeJSON(w, created)
}

func (s *Service) serveEditModel(w http.ResponseWriter, r *http.Request) {
	modelID := mux.Vars(r)["id"]
	var updates catalog.Model
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid model payload", http.StatusBadRequest)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.models {
		if s.models[i].ID != modelID {
			continue
		}
		updates.ID = modelID
		updates.Instances = nil
		s.models[i] = updates
		writeJSON(w, updates)
		return
	}
	http.Error(w, "no such model", http.StatusNotFound)
}

func (s *Service) serveModelInstances(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	query := r.URL.Query()
	var matches []catalog.ModelInstance
	for modelID, instances := range s.modelDetails {
		if want := query.Get("model_id"); want != "" && want != modelID {
			continue
		}
		for _, inst := range instances {
			if id := query.Get("id"); id != "" && inst.ID != id {
				continue
			}
			if v := query.Get("version"); v != "" && inst.Version != v {
				continue
			}
			matches = append(matches, inst)
		}
	}
	writeJSON(w, matches)
}

func (s *Service) serveRegisterModelInstance(w http.ResponseWriter, r *http.Request) {
	var inst catalog.ModelInstance
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil || inst.ModelID == "" {
		http.Error(w, "invalid model instance payload", http.StatusBadRequest)
		return
	}
	s.lock.Lock()
	if inst.ID == "" {
		inst.ID = newID()
	}
	s.modelDetails[inst.ModelID] = append(s.modelDetails[inst.ModelID], inst)
	s.lock.Unlock()
	writeJSON(w, inst)
}

func (s *Service) serveTests(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	query := r.URL.Query()
	var matches []catalog.TestDefinition
	for _, t := range s.tests {
		if id := query.Get("id"); id != "" && t.ID != id {
			continue
		}
		if alias := query.Get("alias"); alias != "" && t.Alias != alias {
			continue
		}
		t.Instances = append([]catalog.TestInstance(nil), s.testInstances[t.ID]...)
		matches = append(matches, t)
	}
	writeJSON(w, matches)
}

func (s *Service) serveRegisterTest(w http.ResponseWriter, r *http.Request) {
	var test catalog.TestDefinition
	if err := json.NewDecoder(r.Body).Decode(&test); err != nil {
		http.Error(w, "invalid test payload", http.StatusBadRequest)
		return
	}
	created := s.AddTest(test)
	writeJSON(w, created)
}

func (s *Service) serveTestInstances(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	query := r.URL.Query()
	var matches []catalog.TestInstance
	for testID, instances := range s.testInstances {
		if want := query.Get("test_definition_id"); want != "" && want != testID {
			continue
		}
		for _, inst := range instances {
			if id := query.Get("id"); id != "" && inst.ID != id {
				continue
			}
			matches = append(matches, inst)
		}
	}
	writeJSON(w, matches)
}

func (s *Service) serveResults(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	query := r.URL.Query()
	var matches []catalog.Result
	for _, res := range s.results {
		if id := query.Get("id"); id != "" && res.ID != id {
			continue
		}
		if mi := query.Get("model_instance_id"); mi != "" && res.ModelInstanceID != mi {
			continue
		}
		if ti := query.Get("test_instance_id"); ti != "" && res.TestInstanceID != ti {
			continue
		}
		matches = append(matches, res)
	}
	writeJSON(w, matches)
}

func (s *Service) serveRegisterResult(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		catalog.Result
		Files         []string `json:"files"`
		StorageFolder string   `json:"storage_folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid result payload", http.StatusBadRequest)
		return
	}
	if payload.ModelInstanceID == "" || payload.TestInstanceID == "" {
		http.Error(w, "result is missing model or test instance ID", http.StatusBadRequest)
		return
	}
	result := payload.Result
	result.ID = newID()
	if payload.StorageFolder != "" {
		result.ResultsStorage = fmt.Sprintf("collab://%s/%s", result.Project, payload.StorageFolder)
	}
	s.lock.Lock()
	s.results = append(s.results, result)
	s.lock.Unlock()
	writeJSON(w, result)
}

func (s *Service) serveStorage(w http.ResponseWriter, r *http.Request) {
	collabID := r.URL.Query().Get("collab_id")
	if collabID == "" {
		http.Error(w, "collab_id is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"location": "collab://" + collabID})
}

func (s *Service) serveObservation(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	s.lock.RLock()
	content, ok := s.observations[name]
	s.lock.RUnlock()
	if !ok {
		http.Error(w, "no such observation file", http.StatusNotFound)
		return
	}
	_, _ = w.Write(content)
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func newID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	// RFC 4122 version 4 layout
	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80
	hexed := hex.EncodeToString(buf[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", hexed[0:8], hexed[8:12], hexed[12:16], hexed[16:20], hexed[20:32])
}
