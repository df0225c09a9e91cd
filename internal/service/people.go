package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// AccountFields are shared by teachers, students and parents.
type AccountFields struct {
	ID       string `json:"id" validate:"required,max=50"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Surname  string `json:"surname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Address  string `json:"address" validate:"required,min=5,max=200"`
}

// PersonalFields are carried by teachers and students.
type PersonalFields struct {
	BloodType string `json:"bloodType" validate:"required,bloodtype"`
	Birthday  string `json:"birthday" validate:"required"`
	Sex       string `json:"sex" validate:"required,oneof=male female"`
	Img       string `json:"img"`
}

// AccountPatch updates account fields. The external id is immutable.
type AccountPatch struct {
	Username *string `json:"username" validate:"omitempty,username"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Surname  *string `json:"surname" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Address  *string `json:"address" validate:"omitempty,min=5,max=200"`
}

// PersonalPatch updates personal fields.
type PersonalPatch struct {
	BloodType *string `json:"bloodType" validate:"omitempty,bloodtype"`
	Birthday  *string `json:"birthday"`
	Sex       *string `json:"sex" validate:"omitempty,oneof=male female"`
	Img       *string `json:"img"`
}

func (a *AccountFields) normalize() {
	a.ID = strings.TrimSpace(a.ID)
	a.Username = strings.ToLower(strings.TrimSpace(a.Username))
	a.Name = strings.TrimSpace(a.Name)
	a.Surname = strings.TrimSpace(a.Surname)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)
}

func (a AccountFields) document() (query.Document, error) {
	hash, err := hashPassword(a.Password)
	if err != nil {
		return nil, err
	}
	doc := query.Document{
		query.FieldExternalID: a.ID,
		"username":            a.Username,
		query.FieldPassword:   hash,
		"name":                a.Name,
		"surname":             a.Surname,
		"address":             a.Address,
	}
	if a.Email != "" {
		doc["email"] = a.Email
	}
	if a.Phone != "" {
		doc["phone"] = a.Phone
	}
	return doc, nil
}

func (p *PersonalFields) normalize() {
	p.Sex = strings.ToLower(strings.TrimSpace(p.Sex))
	p.BloodType = strings.ToUpper(strings.TrimSpace(p.BloodType))
}

func (p PersonalFields) apply(doc query.Document) error {
	birthday, err := parseDate(p.Birthday)
	if err != nil {
		return err
	}
	doc["bloodType"] = p.BloodType
	doc["birthday"] = birthday
	doc["sex"] = p.Sex
	if img := strings.TrimSpace(p.Img); img != "" {
		doc["img"] = img
	}
	return nil
}

func (a *AccountPatch) normalize() {
	a.Username = lowered(trimmed(a.Username))
	a.Name = trimmed(a.Name)
	a.Surname = trimmed(a.Surname)
	a.Email = lowered(trimmed(a.Email))
	a.Phone = trimmed(a.Phone)
	a.Address = trimmed(a.Address)
}

// apply copies the supplied fields into patch. An empty email or phone
// clears the field.
func (a AccountPatch) apply(patch query.Document) error {
	setString(patch, "username", a.Username)
	setString(patch, "name", a.Name)
	setString(patch, "surname", a.Surname)
	setString(patch, "address", a.Address)
	setOptional(patch, "email", a.Email)
	setOptional(patch, "phone", a.Phone)
	if a.Password != nil {
		hash, err := hashPassword(*a.Password)
		if err != nil {
			return err
		}
		patch[query.FieldPassword] = hash
	}
	return nil
}

func (p *PersonalPatch) normalize() {
	p.Sex = lowered(trimmed(p.Sex))
	if p.BloodType != nil {
		upper := strings.ToUpper(strings.TrimSpace(*p.BloodType))
		p.BloodType = &upper
	}
}

func (p PersonalPatch) apply(patch query.Document) error {
	setString(patch, "bloodType", p.BloodType)
	setString(patch, "sex", p.Sex)
	setOptional(patch, "img", trimmed(p.Img))
	if p.Birthday != nil {
		birthday, err := parseDate(*p.Birthday)
		if err != nil {
			return err
		}
		patch["birthday"] = birthday
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return string(hash), nil
}

func setString(patch query.Document, field string, value *string) {
	if value != nil {
		patch[field] = *value
	}
}

// setRequired trims value into patch and rejects a blank one with msg.
func setRequired(patch query.Document, field string, value *string, msg string) error {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return appErrors.Clone(appErrors.ErrValidation, msg)
	}
	patch[field] = text
	return nil
}

func setOptional(patch query.Document, field string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		patch[field] = nil
		return
	}
	patch[field] = *value
}

func lowered(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.ToLower(*value)
	return &v
}
