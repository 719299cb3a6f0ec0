// Package form defines the contract between field mappers and the form layer:
// the builder interface forms are assembled through, the field type names the
// layer understands, and the contractor that completes field descriptions with
// per-type defaults.
package form

// Field type names accepted by Builder implementations. Mappers substitute
// TypeCollection with TypeNativeCollection so nested admins are rendered with
// the form layer's own collection widget.
const (
	TypeText             = "text"
	TypeTextarea         = "textarea"
	TypeEmail            = "email"
	TypeURL              = "url"
	TypeInteger          = "integer"
	TypeNumber           = "number"
	TypePercent          = "percent"
	TypeCheckbox         = "checkbox"
	TypeChoice           = "choice"
	TypeDate             = "date"
	TypeDatetime         = "datetime"
	TypeTime             = "time"
	TypePassword         = "password"
	TypeHidden           = "hidden"
	TypeFile             = "file"
	TypeModel            = "model"
	TypeCollection       = "collection"
	TypeNativeCollection = "native_collection"
)
