package user

import (
	"context"
	"sort"

	"github.com/sistemaclass/classcli/core"
)

type Service struct {
	api core.API
}

func NewService(api core.API) *Service {
	return &Service{api: api}
}

// List fetches /usuarios, drops records without a usable id/name and sorts
// by display name.
func (svc *Service) List(ctx context.Context) ([]User, error) {
	recs, err := svc.api.List(ctx, "/usuarios")
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(recs))
	for _, rec := range recs {
		if u := FromRecord(rec); u != nil {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Nome < users[j].Nome })
	return users, nil
}

// LoginOptions maps the user list into the login selection entries.
func (svc *Service) LoginOptions(ctx context.Context) ([]Option, error) {
	users, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(users))
	for _, u := range users {
		opts = append(opts, Option{Value: u.ID, Label: u.Nome})
	}
	return opts, nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (*User, error) {
	if err := nu.Validate(); err != nil {
		return nil, err
	}
	rec, err := svc.api.Create(ctx, "/usuarios", map[string]interface{}{"nome": nu.Nome})
	if err != nil {
		return nil, err
	}
	return FromRecord(rec), nil
}

func (svc *Service) Update(ctx context.Context, id, nome string) error {
	nu := NewUser{Nome: nome}
	if err := nu.Validate(); err != nil {
		return err
	}
	return svc.api.Patch(ctx, "/usuarios/"+id, map[string]interface{}{"nome": nu.Nome})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.api.Delete(ctx, "/usuarios/"+id)
}

// FindByName matches on the normalized display name; nil when absent.
func FindByName(users []User, name string) *User {
	want := core.CleanString(name, true /* lower */)
	for i := range users {
		if users[i].NormNome() == want {
			return &users[i]
		}
	}
	return nil
}
