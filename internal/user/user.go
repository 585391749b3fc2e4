package user

import (
	"time"

	userDatamodel "expensetracker/internal/core/datamodel/user"
)

// Profile is the public shape of a user record. Password hashes and
// provider subjects never leave the service layer.
type Profile struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func ProfileFromDataModel(dm *userDatamodel.User) *Profile {
	if dm == nil {
		return nil
	}
	return &Profile{
		ID:        dm.ID,
		FirstName: dm.FirstName,
		LastName:  dm.LastName,
		Email:     dm.Email,
		Phone:     dm.Phone,
		Gender:    dm.Gender,
		BirthDate: dm.BirthDate,
		CreatedAt: dm.CreatedAt,
	}
}

func ProfilesFromDataModel(dms []*userDatamodel.User) []*Profile {
	out := make([]*Profile, 0, len(dms))
	for _, dm := range dms {
		out = append(out, ProfileFromDataModel(dm))
	}
	return out
}
