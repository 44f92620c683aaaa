package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/audit"
)

type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore(accts ...account.Account) *mockAccountStore {
	s := &mockAccountStore{accounts: map[string]account.Account{}}
	for _, a := range accts {
		s.accounts[a.Email] = a
	}
	return s
}

// GetByEmail returns a seeded account by email.
// PRE: email is non-empty
// POST: Returns the seeded account or an error
func (s *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := s.accounts[email]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

// GetByID returns a seeded account by ID.
// PRE: id is non-empty
// POST: Returns the seeded account or an error
func (s *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

// Save stores the account keyed by email.
// PRE: a has an email
// POST: Account is retrievable by email
func (s *mockAccountStore) Save(_ context.Context, a account.Account) error {
	s.accounts[a.Email] = a
	return nil
}

type mockAuditLog struct {
	events []audit.Event
}

// Append records the event in memory.
// PRE: event is populated
// POST: Event is retrievable from events
func (l *mockAuditLog) Append(_ context.Context, event audit.Event) error {
	l.events = append(l.events, event)
	return nil
}

func testAccount(t *testing.T, email, password string) account.Account {
	t.Helper()
	a := account.Account{ID: "acct-1", Email: email, Role: account.RoleAdmin, CreatedAt: time.Now()}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	return a
}

// TestExecuteLogin_Success verifies a correct login returns account info.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "admin@gym.test", "correct-horse-battery"))
	log := &mockAuditLog{}

	res, err := ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "correct-horse-battery"}, LoginDeps{AccountStore: store, AuditLog: log})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Role != account.RoleAdmin || res.AccountID != "acct-1" {
		t.Errorf("result=%+v", res)
	}
	if len(log.events) != 1 || log.events[0].Action != audit.ActionLogin {
		t.Errorf("expected one login audit event, got %+v", log.events)
	}
}

// TestExecuteLogin_UniformInvalidCredentials verifies unknown email and wrong
// password return the same error.
func TestExecuteLogin_UniformInvalidCredentials(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "admin@gym.test", "correct-horse-battery"))
	deps := LoginDeps{AccountStore: store}

	_, errUnknown := ExecuteLogin(context.Background(), LoginInput{Email: "nobody@gym.test", Password: "whatever-pass"}, deps)
	_, errWrong := ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "wrong-password-1"}, deps)

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("unknown=%v wrong=%v, want both ErrInvalidCredentials", errUnknown, errWrong)
	}
}

// TestExecuteLogin_LocksAfterRepeatedFailures verifies the lockout kicks in
// and blocks even the correct password.
func TestExecuteLogin_LocksAfterRepeatedFailures(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "admin@gym.test", "correct-horse-battery"))
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "wrong-password-1"}, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err=%v want ErrInvalidCredentials", i, err)
		}
	}

	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "correct-horse-battery"}, deps)
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("after lockout err=%v want ErrAccountLocked", err)
	}
}

// TestExecuteLogin_SuccessResetsFailedCount verifies a good login clears
// earlier failures.
func TestExecuteLogin_SuccessResetsFailedCount(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "admin@gym.test", "correct-horse-battery"))
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 3; i++ {
		_, _ = ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "wrong-password-1"}, deps)
	}
	if _, err := ExecuteLogin(context.Background(), LoginInput{Email: "admin@gym.test", Password: "correct-horse-battery"}, deps); err != nil {
		t.Fatalf("login after failures: %v", err)
	}
	if got := store.accounts["admin@gym.test"].FailedLogins; got != 0 {
		t.Errorf("failed logins=%d want 0", got)
	}
}

// TestExecuteChangePassword verifies current-password check and update.
func TestExecuteChangePassword(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "admin@gym.test", "correct-horse-battery"))
	deps := ChangePasswordDeps{AccountStore: store}

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID: "acct-1", CurrentPassword: "wrong-password-1", NewPassword: "a-new-long-password",
	}, deps)
	if !errors.Is(err, ErrCurrentPasswordWrong) {
		t.Fatalf("err=%v want ErrCurrentPasswordWrong", err)
	}

	err = ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID: "acct-1", CurrentPassword: "correct-horse-battery", NewPassword: "a-new-long-password",
	}, deps)
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	updated := store.accounts["admin@gym.test"]
	if err := updated.CheckPassword("a-new-long-password"); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
}
