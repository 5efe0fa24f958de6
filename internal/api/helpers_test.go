package api

import (
	"strconv"

	"optimanager/m/domain"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func adminUser() domain.User {
	return domain.User{ID: 1, Name: "Ada", Email: "ada@shop.test", Role: domain.RoleAdmin}
}
