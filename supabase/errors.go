package supabase

// RegistrationError signals that the identity provider rejected a signup,
// or that the signup produced no usable identity.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return "registration failed: " + e.Message
}

// AuthenticationError covers every sign-in and token-validation failure.
// Provider errors and bad credentials are deliberately indistinguishable so
// callers cannot probe for account existence.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Message
}

// LogoutError signals a provider-side session invalidation failure.
type LogoutError struct {
	Message string
}

func (e *LogoutError) Error() string {
	return "logout failed: " + e.Message
}
