// Package directory is the mock directory service: an in-memory table of
// demo user records, credential triples, and known drivers used to satisfy
// login and registration when no identity provider is reachable.
//
// The directory is an explicit repository constructed once at process start
// and injected where needed; it holds no package-level state.
package directory

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

// LoginRole is the role label supplied at login time. It is distinct from the
// profile role: "developer" credentials resolve to privileged profiles.
const (
	LoginRoleUser      = "user"
	LoginRoleDeveloper = "developer"
)

// ProfileRoleFor maps a login role label to the profile role it grants.
func ProfileRoleFor(loginRole string) models.Role {
	if loginRole == LoginRoleDeveloper {
		return models.RolePrivileged
	}
	return models.RoleStandard
}

// credential is one (email, password, role) triple. Seeded credentials keep
// the fixed demo password; registered ones carry a bcrypt hash instead.
type credential struct {
	email     string
	password  string
	hash      []byte
	loginRole string
}

func (c credential) matches(password string) bool {
	if c.hash != nil {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	}
	return c.password == password
}

// Driver is a roster entry for favorite-driver adds.
type Driver struct {
	Name          string
	Email         string
	Avatar        string
	Rating        float64
	VehicleNumber string
	VehicleType   string
}

// Directory holds the seeded tables behind an RWMutex. The mutex matters for
// the HTTP surface; the original client ran single-threaded.
type Directory struct {
	mu          sync.RWMutex
	profiles    map[string]*models.UserProfile // keyed by email
	credentials map[string]credential          // keyed by email
	drivers     map[string]Driver              // keyed by email
}

// New constructs a directory populated with the fixed demo personas and the
// known-driver roster.
func New() *Directory {
	d := &Directory{
		profiles:    make(map[string]*models.UserProfile),
		credentials: make(map[string]credential),
		drivers:     make(map[string]Driver),
	}
	d.seed()
	return d
}

// Authenticate looks up a matching (email, password, role) triple and returns
// the seeded profile for it. No state is altered on a miss.
func (d *Directory) Authenticate(email, password, loginRole string) (*models.UserProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cred, ok := d.credentials[email]
	if !ok || cred.loginRole != loginRole || !cred.matches(password) {
		return nil, sentinel.ErrNotFound
	}
	profile, ok := d.profiles[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return profile.Clone(), nil
}

// FindByEmail returns the directory profile for the email, if present.
func (d *Directory) FindByEmail(email string) (*models.UserProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	profile, ok := d.profiles[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return profile.Clone(), nil
}

// Register appends a new member with a bcrypt-hashed credential. Fails with
// ErrConflict when the email already exists; the directory is unchanged.
func (d *Directory) Register(profile *models.UserProfile, password, loginRole string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.profiles[profile.Email]; exists {
		return sentinel.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	d.profiles[profile.Email] = profile.Clone()
	d.credentials[profile.Email] = credential{
		email:     profile.Email,
		hash:      hash,
		loginRole: loginRole,
	}
	return nil
}

// FindDriver returns the roster entry for a driver email.
func (d *Directory) FindDriver(email string) (Driver, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	driver, ok := d.drivers[email]
	if !ok {
		return Driver{}, sentinel.ErrNotFound
	}
	return driver, nil
}

// Count reports the number of member profiles. Used by tests to pin the
// record-count invariant on failed registrations.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.profiles)
}
