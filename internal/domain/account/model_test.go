package account_test

import (
	"testing"

	"fastbreak/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	valid := account.Account{
		ID: "1", Name: "Dana Whitfield", Email: "dana@example.com",
		Phone: "5551234567", Role: account.RoleParent, AuthMethod: account.AuthPassword,
	}

	tests := []struct {
		name    string
		mutate  func(a *account.Account)
		wantErr error
	}{
		{name: "valid account", mutate: func(a *account.Account) {}, wantErr: nil},
		{name: "empty name", mutate: func(a *account.Account) { a.Name = " " }, wantErr: account.ErrEmptyName},
		{name: "empty email", mutate: func(a *account.Account) { a.Email = "" }, wantErr: account.ErrEmptyEmail},
		{name: "email without domain", mutate: func(a *account.Account) { a.Email = "dana@" }, wantErr: account.ErrInvalidEmail},
		{name: "email without at", mutate: func(a *account.Account) { a.Email = "dana.example.com" }, wantErr: account.ErrInvalidEmail},
		{name: "short phone", mutate: func(a *account.Account) { a.Phone = "555123" }, wantErr: account.ErrInvalidPhone},
		{name: "empty phone allowed", mutate: func(a *account.Account) { a.Phone = "" }, wantErr: nil},
		{name: "bad role", mutate: func(a *account.Account) { a.Role = "coach" }, wantErr: account.ErrInvalidRole},
		{name: "bad auth method", mutate: func(a *account.Account) { a.AuthMethod = "magic" }, wantErr: account.ErrInvalidAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if (err != nil) != (tt.wantErr != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_SetPassword tests password hashing rules.
func TestAccount_SetPassword(t *testing.T) {
	var a account.Account

	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("empty password: got %v, want ErrEmptyPassword", err)
	}
	if err := a.SetPassword("abc"); err != account.ErrPasswordTooShort {
		t.Errorf("3-char password: got %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword("hoop"); err != nil {
		t.Fatalf("4-char password rejected: %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "hoop" {
		t.Error("expected bcrypt hash to be stored")
	}
	if a.AuthMethod != account.AuthPassword {
		t.Errorf("AuthMethod = %q, want password", a.AuthMethod)
	}
}

// TestAccount_CheckPassword tests verification against the stored hash.
func TestAccount_CheckPassword(t *testing.T) {
	var a account.Account
	if err := a.SetPassword("layup2026"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if err := a.CheckPassword("layup2026"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := a.CheckPassword("jumpshot"); err != account.ErrWrongPassword {
		t.Errorf("wrong password: got %v, want ErrWrongPassword", err)
	}

	noLogin := account.Account{AuthMethod: account.AuthNone}
	if err := noLogin.CheckPassword("anything"); err != account.ErrCannotLogIn {
		t.Errorf("no-login account: got %v, want ErrCannotLogIn", err)
	}
}

// TestAccount_Lockout tests the failed-login lockout counter.
func TestAccount_Lockout(t *testing.T) {
	var a account.Account
	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Error("locked after 4 failures, want unlocked")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("not locked after 5 failures")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("reset did not clear lock state")
	}
}

// TestIsValidPhone tests the 10-digit phone rule.
func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"5551234567", true},
		{"(555) 123-4567", true},
		{"555.123.4567", true},
		{"555123456", false},
		{"55512345678", false},
		{"555-123-456x", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := account.IsValidPhone(tt.phone); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

// TestNormalizeEmail tests case-insensitive email normalization.
func TestNormalizeEmail(t *testing.T) {
	if got := account.NormalizeEmail("  Dana@Example.COM "); got != "dana@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
