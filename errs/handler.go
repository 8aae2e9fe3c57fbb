package errs

// Handler receives diagnostics. A non-nil return aborts the current operation.
type Handler interface {
	HandleError(err *Error) error
}

// Throwing aborts on the first error.
type Throwing struct{}

var _ Handler = Throwing{}

func (Throwing) HandleError(err *Error) error {
	return err
}

// Collecting records every error and never aborts.
type Collecting struct {
	errors []*Error
}

var _ Handler = new(Collecting)

func (c *Collecting) HandleError(err *Error) error {
	c.errors = append(c.errors, err)
	return nil
}

func (c *Collecting) Errors() []*Error {
	return c.errors
}

func (c *Collecting) HasErrors() bool {
	return len(c.errors) > 0
}

func (c *Collecting) Clear() {
	c.errors = nil
}

// Or returns h, or the throwing handler when h is nil.
func Or(h Handler) Handler {
	if h == nil {
		return Throwing{}
	}
	return h
}
