package model

// Reserved FoodItem keys. Both are server-owned and never accepted from clients.
const (
	FieldID      = "_id"
	FieldAddedBy = "addedBy"
)

// FoodItem is a food document: arbitrary caller-supplied fields plus the
// server-assigned _id and addedBy.
type FoodItem map[string]any

// AddedBy returns the email of the identity that created the item.
func (f FoodItem) AddedBy() string {
	owner, _ := f[FieldAddedBy].(string)
	return owner
}

// ForInsert returns a copy of the item stamped with owner. Any
// client-supplied _id is dropped and addedBy is overwritten.
func (f FoodItem) ForInsert(owner string) FoodItem {
	out := make(FoodItem, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	delete(out, FieldID)
	out[FieldAddedBy] = owner
	return out
}

// Patch returns a copy of the item suitable for a merge-patch update, with
// the immutable _id and addedBy fields removed.
func (f FoodItem) Patch() FoodItem {
	out := make(FoodItem, len(f))
	for k, v := range f {
		if k == FieldID || k == FieldAddedBy {
			continue
		}
		out[k] = v
	}
	return out
}

// InsertResult is returned after a food item is created.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResult is returned after an owned item is deleted.
type DeleteResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse is returned after a credential is accepted.
type LoginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}
