package readline

// suspend is a no-op; Windows consoles have no job control.
func (t *Terminal) suspend() error {
	return nil
}
