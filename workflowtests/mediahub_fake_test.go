package workflowtests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

var (
	fakeAdminCred = client.Credential{Username: "admin", Password: "verysecret"}
	fakeUserCred  = client.Credential{Username: "testuser", Password: "testpassword"}
)

type fakeUser struct {
	servicedef.User
	password string
}

type fakeEntry struct {
	payload   []byte
	mediaType string
	filename  string
	metadata  string
}

type fakeDatabase struct {
	params  servicedef.CreateDatabaseParams
	entries map[int64]*fakeEntry
}

// fakeMediaHub is an in-memory stand-in for a MediaHub server, covering
// just the API surface the workflow drives.
type fakeMediaHub struct {
	lock        sync.Mutex
	users       map[int64]*fakeUser
	databases   map[string]*fakeDatabase
	nextUserID  int64
	nextEntryID int64

	// ignorePermissions makes database creation succeed regardless of the
	// caller's can_create flag, simulating a server whose authorization
	// update did not take effect.
	ignorePermissions bool

	// intercept, when set, may answer a request before the normal handler
	// runs; return a non-zero status to take over.
	intercept func(r *http.Request) int
}

func newFakeMediaHub() *fakeMediaHub {
	return &fakeMediaHub{
		users:     make(map[int64]*fakeUser),
		databases: make(map[string]*fakeDatabase),
	}
}

func (f *fakeMediaHub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/users", f.handleUsers)
	mux.HandleFunc("/api/user", f.handleUser)
	mux.HandleFunc("/api/database", f.handleDatabase)
	mux.HandleFunc("/api/entry", f.handleEntry)
	mux.HandleFunc("/api/entry/file", f.handleEntryFile)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.intercept != nil {
			if status := f.intercept(r); status != 0 {
				w.WriteHeader(status)
				return
			}
		}
		mux.ServeHTTP(w, r)
	})
}

func (f *fakeMediaHub) authenticate(r *http.Request) (servicedef.User, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return servicedef.User{}, false
	}
	if username == fakeAdminCred.Username && password == fakeAdminCred.Password {
		return servicedef.User{
			Username: username, IsAdmin: true,
			CanView: true, CanCreate: true, CanEdit: true, CanDelete: true,
		}, true
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	for _, u := range f.users {
		if u.Username == username && u.password == password {
			return u.User, true
		}
	}
	return servicedef.User{}, false
}

func (f *fakeMediaHub) handleUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := f.authenticate(r)
	if !ok || !caller.IsAdmin {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f.lock.Lock()
	users := make([]servicedef.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u.User)
	}
	f.lock.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (f *fakeMediaHub) handleUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := f.authenticate(r)
	if !ok || !caller.IsAdmin {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var params servicedef.CreateUserParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lock.Lock()
		f.nextUserID++
		u := &fakeUser{
			User: servicedef.User{
				ID: f.nextUserID, Username: params.Username,
				CanView: params.CanView, CanCreate: params.CanCreate,
				CanEdit: params.CanEdit, CanDelete: params.CanDelete,
				IsAdmin: params.IsAdmin,
			},
			password: params.Password,
		}
		f.users[u.ID] = u
		f.lock.Unlock()
		writeJSON(w, http.StatusCreated, u.User)

	case http.MethodPatch:
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		var patch struct {
			CanView   *bool `json:"can_view"`
			CanCreate *bool `json:"can_create"`
			CanEdit   *bool `json:"can_edit"`
			CanDelete *bool `json:"can_delete"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lock.Lock()
		u, found := f.users[id]
		if found {
			if patch.CanView != nil {
				u.CanView = *patch.CanView
			}
			if patch.CanCreate != nil {
				u.CanCreate = *patch.CanCreate
			}
			if patch.CanEdit != nil {
				u.CanEdit = *patch.CanEdit
			}
			if patch.CanDelete != nil {
				u.CanDelete = *patch.CanDelete
			}
		}
		f.lock.Unlock()
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, u.User)

	case http.MethodDelete:
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		f.lock.Lock()
		_, found := f.users[id]
		delete(f.users, id)
		f.lock.Unlock()
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeMediaHub) handleDatabase(w http.ResponseWriter, r *http.Request) {
	caller, ok := f.authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if !caller.IsAdmin && !caller.CanCreate && !f.ignorePermissions {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var params servicedef.CreateDatabaseParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lock.Lock()
		_, exists := f.databases[params.Name]
		if !exists {
			f.databases[params.Name] = &fakeDatabase{
				params:  params,
				entries: make(map[int64]*fakeEntry),
			}
		}
		f.lock.Unlock()
		if exists {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)

	case http.MethodDelete:
		if !caller.IsAdmin && !caller.CanDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		name := r.URL.Query().Get("name")
		f.lock.Lock()
		_, found := f.databases[name]
		delete(f.databases, name)
		f.lock.Unlock()
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeMediaHub) handleEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := f.authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	dbName := r.URL.Query().Get("database_name")
	f.lock.Lock()
	db := f.databases[dbName]
	f.lock.Unlock()
	if db == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if !caller.IsAdmin && !caller.CanCreate {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lock.Lock()
		f.nextEntryID++
		id := f.nextEntryID
		db.entries[id] = &fakeEntry{
			payload:   payload,
			mediaType: header.Header.Get("Content-Type"),
			filename:  header.Filename,
			metadata:  r.FormValue("metadata"),
		}
		f.lock.Unlock()
		writeJSON(w, http.StatusCreated, servicedef.CreateEntryResponse{ID: id})

	case http.MethodDelete:
		if !caller.IsAdmin && !caller.CanDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		f.lock.Lock()
		_, found := db.entries[id]
		delete(db.entries, id)
		f.lock.Unlock()
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeMediaHub) handleEntryFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.authenticate(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	dbName := r.URL.Query().Get("database_name")
	id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)

	f.lock.Lock()
	var entry *fakeEntry
	if db := f.databases[dbName]; db != nil {
		entry = db.entries[id]
	}
	f.lock.Unlock()
	if entry == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", entry.mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.payload)
}

// Test-seeding and inspection helpers.

func (f *fakeMediaHub) seedUser(cred client.Credential) int64 {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.nextUserID++
	f.users[f.nextUserID] = &fakeUser{
		User: servicedef.User{
			ID: f.nextUserID, Username: cred.Username,
			CanView: true, CanCreate: true, CanEdit: true, CanDelete: true,
		},
		password: cred.Password,
	}
	return f.nextUserID
}

func (f *fakeMediaHub) seedDatabase(name string, ct servicedef.ContentType) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.databases[name] = &fakeDatabase{
		params:  servicedef.CreateDatabaseParams{Name: name, ContentType: ct},
		entries: make(map[int64]*fakeEntry),
	}
}

func (f *fakeMediaHub) seedEntry(dbName string, payload []byte) int64 {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.nextEntryID++
	f.databases[dbName].entries[f.nextEntryID] = &fakeEntry{
		payload: payload, mediaType: "text/plain", filename: "seeded.txt",
	}
	return f.nextEntryID
}

func (f *fakeMediaHub) databaseNames() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	var names []string
	for name := range f.databases {
		names = append(names, name)
	}
	return names
}

func (f *fakeMediaHub) userCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.users)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
