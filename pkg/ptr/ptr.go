package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// Deref возвращает значение по указателю или def, если указатель nil
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// NilIfEmpty возвращает nil для пустой строки
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
