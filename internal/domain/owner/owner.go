package owner

import (
	"strings"
	"time"

	"chatwarden/internal/shared/biztime"
)

// Owner is a tenant account. Every bot, chat, employee and membership link in
// the system belongs to exactly one owner, and every query is scoped by its
// identifier.
type Owner struct {
	id                  uint
	login               string
	passwordHash        string
	firstName           string
	lastName            string
	email               string
	company             string
	languageCode        string
	isActive            bool
	isAdmin             bool
	failedLoginAttempts int
	lockedUntil         *time.Time
	lastLogin           *time.Time
	createdAt           time.Time
	updatedAt           time.Time
}

func NewOwner(login, passwordHash, firstName, lastName, email, company, languageCode string, isAdmin bool) (*Owner, error) {
	login = strings.TrimSpace(login)
	if len(login) < 3 {
		return nil, ErrInvalidLogin
	}
	if passwordHash == "" {
		return nil, ErrEmptyPasswordHash
	}
	if languageCode == "" {
		languageCode = "en"
	}

	now := biztime.NowUTC()
	return &Owner{
		login:        login,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		company:      company,
		languageCode: languageCode,
		isActive:     true,
		isAdmin:      isAdmin,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructOwner restores an owner from persistence without validation.
func ReconstructOwner(
	id uint,
	login, passwordHash, firstName, lastName, email, company, languageCode string,
	isActive, isAdmin bool,
	failedLoginAttempts int,
	lockedUntil, lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *Owner {
	return &Owner{
		id:                  id,
		login:               login,
		passwordHash:        passwordHash,
		firstName:           firstName,
		lastName:            lastName,
		email:               email,
		company:             company,
		languageCode:        languageCode,
		isActive:            isActive,
		isAdmin:             isAdmin,
		failedLoginAttempts: failedLoginAttempts,
		lockedUntil:         lockedUntil,
		lastLogin:           lastLogin,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (o *Owner) ID() uint                 { return o.id }
func (o *Owner) Login() string            { return o.login }
func (o *Owner) PasswordHash() string     { return o.passwordHash }
func (o *Owner) FirstName() string        { return o.firstName }
func (o *Owner) LastName() string         { return o.lastName }
func (o *Owner) Email() string            { return o.email }
func (o *Owner) Company() string          { return o.company }
func (o *Owner) LanguageCode() string     { return o.languageCode }
func (o *Owner) IsActive() bool           { return o.isActive }
func (o *Owner) IsAdmin() bool            { return o.isAdmin }
func (o *Owner) FailedLoginAttempts() int { return o.failedLoginAttempts }
func (o *Owner) LockedUntil() *time.Time  { return o.lockedUntil }
func (o *Owner) LastLogin() *time.Time    { return o.lastLogin }
func (o *Owner) CreatedAt() time.Time     { return o.createdAt }
func (o *Owner) UpdatedAt() time.Time     { return o.updatedAt }

func (o *Owner) FullName() string {
	return strings.TrimSpace(o.firstName + " " + o.lastName)
}

// SetID assigns the persistence identifier after insert.
func (o *Owner) SetID(id uint) { o.id = id }

// IsLocked reports whether a lockout window is still in effect.
func (o *Owner) IsLocked(now time.Time) bool {
	return o.lockedUntil != nil && now.Before(*o.lockedUntil)
}

// RecordLoginFailure increments the failure counter and, once maxFailures is
// reached, opens a lockout window and resets the counter.
func (o *Owner) RecordLoginFailure(now time.Time, maxFailures int, lockout time.Duration) {
	o.failedLoginAttempts++
	if maxFailures > 0 && o.failedLoginAttempts >= maxFailures {
		until := now.Add(lockout)
		o.lockedUntil = &until
		o.failedLoginAttempts = 0
	}
	o.touch()
}

// RecordLogin clears failure state and stamps the login time.
func (o *Owner) RecordLogin(now time.Time) {
	o.failedLoginAttempts = 0
	o.lockedUntil = nil
	o.lastLogin = &now
	o.touch()
}

func (o *Owner) ChangePassword(hash string) error {
	if hash == "" {
		return ErrEmptyPasswordHash
	}
	o.passwordHash = hash
	o.touch()
	return nil
}

func (o *Owner) UpdateProfile(firstName, lastName, email, company, languageCode string) {
	o.firstName = firstName
	o.lastName = lastName
	o.email = email
	o.company = company
	if languageCode != "" {
		o.languageCode = languageCode
	}
	o.touch()
}

func (o *Owner) SetAdmin(isAdmin bool) {
	o.isAdmin = isAdmin
	o.touch()
}

func (o *Owner) Activate() {
	o.isActive = true
	o.touch()
}

func (o *Owner) Deactivate() {
	o.isActive = false
	o.touch()
}

func (o *Owner) touch() {
	o.updatedAt = biztime.NowUTC()
}
