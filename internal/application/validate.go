package application

import (
	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/pkg/validation"
)

var validate = validation.New()

type accountInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (in *accountInput) rules() []validation.Rule {
	return []validation.Rule{
		validation.Field("name", in.Name, "min=1"),
		validation.Field("password", in.Password, "min=5,maxbytes=72"),
	}
}

type postInput struct {
	Heading     *string `json:"heading"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
}

func (in *postInput) rules() []validation.Rule {
	return []validation.Rule{
		validation.Field("heading", in.Heading, "max=50"),
		validation.Field("description", in.Description, ""),
		// ids are int4 in the store
		validation.Field("user_id", in.UserID, "gt=0,max=2147483647"),
	}
}

// ParseAccount turns a request body into an AccountPatch for op.
// Rejections are returned as errs.Validation.
func ParseAccount(raw []byte, op validation.Op) (entity.AccountPatch, error) {
	var in accountInput
	if err := parse(raw, &in, op, in.rules); err != nil {
		return entity.AccountPatch{}, err
	}
	return entity.AccountPatch{Name: in.Name, Password: in.Password}, nil
}

// ParsePost turns a request body into a PostPatch for op.
func ParsePost(raw []byte, op validation.Op) (entity.PostPatch, error) {
	var in postInput
	if err := parse(raw, &in, op, in.rules); err != nil {
		return entity.PostPatch{}, err
	}
	return entity.PostPatch{Heading: in.Heading, Description: in.Description, UserID: in.UserID}, nil
}

// rules is evaluated after decoding so it sees the decoded pointers.
func parse(raw []byte, dst any, op validation.Op, rules func() []validation.Rule) error {
	if err := validation.Decode(raw, dst); err != nil {
		return toDomain(err)
	}
	return toDomain(validate.Check(op, rules()...))
}

func toDomain(err error) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*validation.FieldError); ok {
		return errs.NewValidation(fe.Field, fe.Reason)
	}
	return err
}
