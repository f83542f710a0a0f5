package api

import (
	"net/http"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/result"
)

// HTTPCreateUser returns a HandlerFunc that adds an account. Only admins may
// call it; the role defaults to a plain user.
func (api API) HTTPCreateUser() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epCreateUser)
}

func (api API) epCreateUser(req *http.Request) result.Result {
	admin := requireUser(req)
	if admin.Role != dao.RoleAdmin {
		return result.Forbidden("user %q (role %s) create user: forbidden", admin.Username, admin.Role)
	}

	var create UserCreateRequest
	if err := decodeJSON(req, &create); err != nil {
		return result.FromErr(err, "")
	}

	role := dao.RoleUser
	if create.Role != "" {
		var err error
		role, err = dao.ParseRole(create.Role)
		if err != nil {
			return result.BadRequest("role: "+err.Error(), "bad role %q", create.Role)
		}
	}

	u, err := api.Backend.CreateUser(req.Context(), create.Username, create.Password, role)
	if err != nil {
		return result.FromErr(err, "user %q create user %q", admin.Username, create.Username)
	}

	return result.Created(UserModel{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
		Created:  u.Created.Format(time.RFC3339),
	}, "user %q created user %q (%s)", admin.Username, u.Username, u.Role)
}
