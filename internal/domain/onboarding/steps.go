package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/contact"
)

// MaxBioLength caps the counselor bio.
const MaxBioLength = 500

// ValidShirtSizes lists accepted staff shirt sizes.
var ValidShirtSizes = []string{"S", "M", "L", "XL", "XXL"}

// Step validation errors surfaced as inline messages.
var (
	ErrOpenCamperForm  = errors.New("finish or cancel the camper you are adding first")
	ErrOpenContactForm = errors.New("finish or cancel the contact you are adding first")
	ErrNoCampers       = errors.New("add at least one camper to continue")
	ErrAgreementNeeded = errors.New("both acknowledgements are required")
	ErrInvalidShirt    = errors.New("pick a shirt size")
)

// ValidateStep runs the pure validation predicate for one step of the
// wizard's flow. Email uniqueness is not checked here; that needs the
// account stores and happens in the onboarding orchestrators.
// PRE: 1 <= step <= NumSteps
// POST: Returns nil when the step's gate passes; the draft is unchanged
func (w *Wizard) ValidateStep(step int) error {
	if w.Flow == FlowCounselor {
		switch step {
		case CounselorStepAccount:
			return validateAccountStep(w.Draft)
		case CounselorStepProfile:
			return validateProfileStep(w.Draft)
		case CounselorStepAvailability:
			return validatePicksStep(w.Draft)
		case CounselorStepContacts:
			return validateContactsStep(w.Draft)
		case CounselorStepAgreement:
			return validateAgreementStep(w.Draft)
		}
		return fmt.Errorf("no such step: %d", step)
	}
	switch step {
	case ParentStepAccount:
		return validateAccountStep(w.Draft)
	case ParentStepRoster:
		return validateRosterStep(w.Draft)
	case ParentStepContacts:
		return validateContactsStep(w.Draft)
	case ParentStepAgreement:
		return validateAgreementStep(w.Draft)
	}
	return fmt.Errorf("no such step: %d", step)
}

// StepWarning returns a soft advisory for the current step, or "".
// Warnings never block advancement.
func (w *Wizard) StepWarning() string {
	isContacts := (w.Flow == FlowParent && w.Step == ParentStepContacts) ||
		(w.Flow == FlowCounselor && w.Step == CounselorStepContacts)
	if !isContacts {
		return ""
	}
	// The enrolling adult counts as one contact.
	if len(w.Draft.Contacts)+1 < contact.MinPerFamily {
		return fmt.Sprintf("we recommend at least %d emergency contacts including yourself", contact.MinPerFamily)
	}
	return ""
}

func validateAccountStep(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return account.ErrEmptyName
	}
	if !account.IsValidEmail(d.Email) {
		return account.ErrInvalidEmail
	}
	if !account.IsValidPhone(d.Phone) {
		return account.ErrInvalidPhone
	}
	if !d.ExternalAuth && len(d.Password) < account.MinPasswordLength {
		return account.ErrPasswordTooShort
	}
	return nil
}

func validateRosterStep(d Draft) error {
	if d.CamperForm != nil {
		return ErrOpenCamperForm
	}
	complete := 0
	for i := range d.Campers {
		if d.Campers[i].IsComplete() {
			complete++
		} else {
			return fmt.Errorf("camper %q is missing details", d.Campers[i].Name)
		}
	}
	if complete == 0 {
		return ErrNoCampers
	}
	return nil
}

func validateContactsStep(d Draft) error {
	if d.ContactForm != nil {
		return ErrOpenContactForm
	}
	for i := range d.Contacts {
		if err := d.Contacts[i].Validate(); err != nil {
			return err
		}
	}
	// Minimum count is a soft warning, not a gate.
	return nil
}

func validateProfileStep(d Draft) error {
	if !isValidShirtSize(d.ShirtSize) {
		return ErrInvalidShirt
	}
	if len(d.Bio) > MaxBioLength {
		return errors.New("bio cannot exceed 500 characters")
	}
	return nil
}

func validatePicksStep(d Draft) error {
	seen := make(map[string]bool, len(d.Picks))
	for _, p := range d.Picks {
		rec := availability.Record{CounselorID: "pending", Date: p.Date, Session: p.Session, State: availability.StateAvailable}
		if err := rec.Validate(); err != nil {
			return err
		}
		key := availability.SlotKey(p.Date, p.Session)
		if seen[key] {
			return fmt.Errorf("duplicate session pick: %s", key)
		}
		seen[key] = true
	}
	return nil
}

func validateAgreementStep(d Draft) error {
	if !d.AgreePolicies || !d.AgreeWaiver {
		return ErrAgreementNeeded
	}
	return nil
}

func isValidShirtSize(s string) bool {
	for _, v := range ValidShirtSizes {
		if v == s {
			return true
		}
	}
	return false
}
