// Package profile holds the authenticated user's editable profile and the
// merge policy between the remote row and local optimistic edits.
package profile

import (
	"fmt"
	"strings"

	"github.com/pathshare/pathshare/internal/session"
)

// Gender is the profile's self-described gender.
type Gender string

const (
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderNonBinary   Gender = "Non-binary"
	GenderUnspecified Gender = "Prefer not to say"
)

// WelcomeBonusPoints is granted exactly once, when a profile row is first
// created for a new account.
const WelcomeBonusPoints = 50

const newMemberBio = "New PathShare member."

// Profile is the mutable record displayed across the app. ID equals the
// session's user id and never changes once set.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Gender        Gender
	Avatar        string
	Bio           string
	IsGovVerified bool
	Points        int
	Rides         int
}

// Default returns the profile shown before any remote data arrives.
func Default() Profile {
	return Profile{
		Name:   "User",
		Gender: GenderUnspecified,
		Avatar: "https://picsum.photos/seed/pathshare/200/200",
		Bio:    "Commuting daily. Eco-warrior and tech enthusiast.",
	}
}

// NewFromSession seeds a fresh profile from auth metadata: name from the
// full-name hint or the local part of the email, avatar from the hint or a
// deterministic placeholder keyed by user id.
func NewFromSession(s *session.Session) Profile {
	name := s.FullName
	if name == "" {
		if at := strings.Index(s.Email, "@"); at > 0 {
			name = s.Email[:at]
		} else {
			name = "User"
		}
	}

	avatar := s.AvatarURL
	if avatar == "" {
		avatar = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", s.UserID)
	}

	return Profile{
		ID:     s.UserID,
		Name:   name,
		Email:  s.Email,
		Avatar: avatar,
		Bio:    newMemberBio,
		Points: WelcomeBonusPoints,
	}
}

// Row converts the profile to a store row for upsert.
func (p Profile) Row() session.Row {
	return session.Row{
		"id":              p.ID,
		"name":            p.Name,
		"email":           p.Email,
		"phone":           p.Phone,
		"gender":          string(p.Gender),
		"avatar":          p.Avatar,
		"bio":             p.Bio,
		"is_gov_verified": p.IsGovVerified,
		"points":          p.Points,
		"rides":           p.Rides,
	}
}

// merge overwrites the profile field-by-field from a store row. Keys absent
// from the row leave the corresponding local field untouched.
func (p *Profile) merge(row session.Row) {
	if v, ok := rowString(row, "id"); ok {
		p.ID = v
	}
	if v, ok := rowString(row, "name"); ok {
		p.Name = v
	}
	if v, ok := rowString(row, "email"); ok {
		p.Email = v
	}
	if v, ok := rowString(row, "phone"); ok {
		p.Phone = v
	}
	if v, ok := rowString(row, "gender"); ok {
		p.Gender = Gender(v)
	}
	if v, ok := rowString(row, "avatar"); ok {
		p.Avatar = v
	}
	if v, ok := rowString(row, "bio"); ok {
		p.Bio = v
	}
	if v, ok := row["is_gov_verified"].(bool); ok {
		p.IsGovVerified = v
	}
	if v, ok := rowInt(row, "points"); ok {
		p.Points = v
	}
	if v, ok := rowInt(row, "rides"); ok {
		p.Rides = v
	}
}

func rowString(row session.Row, key string) (string, bool) {
	v, ok := row[key].(string)
	return v, ok
}

// rowInt tolerates both decoded JSON numbers and natively set ints.
func rowInt(row session.Row, key string) (int, bool) {
	switch v := row[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Patch is a partial profile edit. Nil fields are left as they are, both in
// the upserted row and in memory.
type Patch struct {
	Name          *string
	Email         *string
	Phone         *string
	Gender        *Gender
	Avatar        *string
	Bio           *string
	IsGovVerified *bool
	Points        *int
	Rides         *int
}

// Row converts the patch to a store row keyed by the given user id.
func (pt Patch) Row(id string) session.Row {
	row := session.Row{"id": id}
	if pt.Name != nil {
		row["name"] = *pt.Name
	}
	if pt.Email != nil {
		row["email"] = *pt.Email
	}
	if pt.Phone != nil {
		row["phone"] = *pt.Phone
	}
	if pt.Gender != nil {
		row["gender"] = string(*pt.Gender)
	}
	if pt.Avatar != nil {
		row["avatar"] = *pt.Avatar
	}
	if pt.Bio != nil {
		row["bio"] = *pt.Bio
	}
	if pt.IsGovVerified != nil {
		row["is_gov_verified"] = *pt.IsGovVerified
	}
	if pt.Points != nil {
		row["points"] = *pt.Points
	}
	if pt.Rides != nil {
		row["rides"] = *pt.Rides
	}
	return row
}

func (pt Patch) apply(p *Profile) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Email != nil {
		p.Email = *pt.Email
	}
	if pt.Phone != nil {
		p.Phone = *pt.Phone
	}
	if pt.Gender != nil {
		p.Gender = *pt.Gender
	}
	if pt.Avatar != nil {
		p.Avatar = *pt.Avatar
	}
	if pt.Bio != nil {
		p.Bio = *pt.Bio
	}
	if pt.IsGovVerified != nil {
		p.IsGovVerified = *pt.IsGovVerified
	}
	if pt.Points != nil {
		p.Points = *pt.Points
	}
	if pt.Rides != nil {
		p.Rides = *pt.Rides
	}
}
