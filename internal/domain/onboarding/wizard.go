package onboarding

import (
	"errors"

	"fastbreak/internal/domain/camper"
	"fastbreak/internal/domain/contact"
)

// Flow identifies which onboarding variant a wizard runs.
type Flow string

// Flow constants. Parent runs 4 steps, counselor 5.
const (
	FlowParent    Flow = "parent"
	FlowCounselor Flow = "counselor"
)

// Parent step numbers.
const (
	ParentStepAccount   = 1
	ParentStepRoster    = 2
	ParentStepContacts  = 3
	ParentStepAgreement = 4
)

// Counselor step numbers.
const (
	CounselorStepAccount      = 1
	CounselorStepProfile      = 2
	CounselorStepAvailability = 3
	CounselorStepContacts     = 4
	CounselorStepAgreement    = 5
)

// Domain errors
var (
	ErrSubmitting     = errors.New("submission already in progress")
	ErrCannotSkipHere = errors.New("only interior steps can skip ahead")
	ErrBadEditTarget  = errors.New("can only jump back to an earlier step")
)

// SessionPick is one pre-declared available session from the counselor
// availability step.
type SessionPick struct {
	Date    string `json:"date"`
	Session string `json:"session"`
}

// Draft accumulates everything the wizard collects before the terminal
// submit. Nothing is persisted until submission.
type Draft struct {
	// Account step (both flows)
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ExternalAuth bool   `json:"externalAuth"` // signed in via identity provider, no password needed

	// Parent roster step
	Campers    []camper.Camper `json:"campers"`
	CamperForm *camper.Camper  `json:"camperForm,omitempty"` // open add-sub-form; blocks advancement

	// Emergency contacts step (both flows)
	Contacts    []contact.Contact `json:"contacts"`
	ContactForm *contact.Contact  `json:"contactForm,omitempty"`

	// Counselor profile step
	ShirtSize   string `json:"shirtSize"`
	Bio         string `json:"bio"`
	PhotoBase64 string `json:"photoBase64,omitempty"`

	// Counselor availability step
	Picks []SessionPick `json:"picks"`

	// Agreement step
	AgreePolicies bool `json:"agreePolicies"`
	AgreeWaiver   bool `json:"agreeWaiver"`
}

// Wizard is the linear validated multi-step flow over a Draft. The step
// counter runs 1..NumSteps. EditReturnStep is set when the user jumps
// back from the summary/agreement step; confirming that step returns to
// the summary step instead of advancing linearly.
type Wizard struct {
	Flow           Flow   `json:"flow"`
	Step           int    `json:"step"`
	EditReturnStep int    `json:"editReturnStep,omitempty"`
	Draft          Draft  `json:"draft"`
	Err            string `json:"error,omitempty"`
	Submitting     bool   `json:"submitting"`
}

// NewParentWizard starts the 4-step parent flow at step 1.
func NewParentWizard() *Wizard {
	return &Wizard{Flow: FlowParent, Step: 1}
}

// NewCounselorWizard starts the 5-step counselor flow at step 1.
func NewCounselorWizard() *Wizard {
	return &Wizard{Flow: FlowCounselor, Step: 1}
}

// NumSteps returns the step count for the wizard's flow.
func (w *Wizard) NumSteps() int {
	if w.Flow == FlowCounselor {
		return 5
	}
	return 4
}

// AgreementStep returns the final step number.
func (w *Wizard) AgreementStep() int {
	return w.NumSteps()
}

// Advance validates the current step and moves forward on success.
// PRE: wizard is not submitting
// POST: on success the step advances (to EditReturnStep if set, else
// +1) and Err is cleared; on failure the step is unchanged and Err is
// a non-empty message
func (w *Wizard) Advance() bool {
	if w.Submitting {
		w.Err = ErrSubmitting.Error()
		return false
	}
	if err := w.ValidateStep(w.Step); err != nil {
		w.Err = err.Error()
		return false
	}
	w.Err = ""
	if w.EditReturnStep != 0 {
		w.Step = w.EditReturnStep
		w.EditReturnStep = 0
		return true
	}
	if w.Step < w.NumSteps() {
		w.Step++
	}
	return true
}

// Back moves one step back without validating.
// POST: step decremented (floor 1), Err cleared
func (w *Wizard) Back() {
	if w.Step > 1 {
		w.Step--
	}
	w.Err = ""
}

// EditStep jumps back to an earlier step to edit it, remembering the
// current step so Advance returns here.
// PRE: target is an earlier step >= 1
// POST: Step=target, EditReturnStep=previous step
func (w *Wizard) EditStep(target int) error {
	if target < 1 || target >= w.Step {
		return ErrBadEditTarget
	}
	w.EditReturnStep = w.Step
	w.Step = target
	w.Err = ""
	return nil
}

// SkipToAgreement jumps from an interior step straight to the final
// agreement step, bypassing optional steps. The account step can never
// be skipped.
// PRE: 1 < Step < AgreementStep
// POST: Step=AgreementStep, EditReturnStep cleared
func (w *Wizard) SkipToAgreement() error {
	if w.Step <= 1 || w.Step >= w.AgreementStep() {
		return ErrCannotSkipHere
	}
	w.Step = w.AgreementStep()
	w.EditReturnStep = 0
	w.Err = ""
	return nil
}

// BeginSubmit re-validates every step and arms the submitting guard.
// PRE: wizard is at the agreement step and not already submitting
// POST: Submitting=true on success; on failure Err names the problem
func (w *Wizard) BeginSubmit() error {
	if w.Submitting {
		return ErrSubmitting
	}
	for step := 1; step <= w.NumSteps(); step++ {
		if err := w.ValidateStep(step); err != nil {
			w.Err = err.Error()
			return err
		}
	}
	w.Err = ""
	w.Submitting = true
	return nil
}

// EndSubmit releases the submitting guard after the commit finishes
// (or fails).
func (w *Wizard) EndSubmit() {
	w.Submitting = false
}

// OpenCamperForm opens the roster add-sub-form. While open it blocks
// advancement past the roster step.
func (w *Wizard) OpenCamperForm() {
	w.Draft.CamperForm = &camper.Camper{}
}

// CommitCamperForm validates the open sub-form and appends it to the
// roster.
// PRE: CamperForm is open and fully specified
// POST: camper appended, form closed
func (w *Wizard) CommitCamperForm() error {
	if w.Draft.CamperForm == nil {
		return errors.New("no camper form is open")
	}
	if err := w.Draft.CamperForm.Validate(); err != nil {
		return err
	}
	w.Draft.Campers = append(w.Draft.Campers, *w.Draft.CamperForm)
	w.Draft.CamperForm = nil
	return nil
}

// CancelCamperForm discards the open sub-form.
func (w *Wizard) CancelCamperForm() {
	w.Draft.CamperForm = nil
}

// OpenContactForm opens the emergency-contact add-sub-form.
func (w *Wizard) OpenContactForm() {
	w.Draft.ContactForm = &contact.Contact{}
}

// CommitContactForm validates the open sub-form and appends it.
// PRE: ContactForm is open with a name and valid phone
// POST: contact appended, form closed
func (w *Wizard) CommitContactForm() error {
	if w.Draft.ContactForm == nil {
		return errors.New("no contact form is open")
	}
	if err := w.Draft.ContactForm.Validate(); err != nil {
		return err
	}
	w.Draft.Contacts = append(w.Draft.Contacts, *w.Draft.ContactForm)
	w.Draft.ContactForm = nil
	return nil
}

// CancelContactForm discards the open sub-form.
func (w *Wizard) CancelContactForm() {
	w.Draft.ContactForm = nil
}
