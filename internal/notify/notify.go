// Package notify carries transient user-facing messages back to the client.
// The client renders them as toasts; the server only decides their content.
package notify

// Variant selects how the client styles a notice.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Messages shown to the user.
const (
	NoRoleTitle       = "Error"
	NoRoleDescription = "Anda belum memiliki role. Silakan hubungi administrator."
	SuccessTitle      = "Berhasil"
)

// Notice is a single toast.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Success builds a default notice.
func Success(description string) Notice {
	return Notice{Title: SuccessTitle, Description: description, Variant: VariantDefault}
}

// Error builds a destructive notice.
func Error(description string) Notice {
	return Notice{Title: "Error", Description: description, Variant: VariantDestructive}
}

// NoRole is the notice raised when an identity has no usable role.
func NoRole() Notice {
	return Notice{Title: NoRoleTitle, Description: NoRoleDescription, Variant: VariantDestructive}
}
