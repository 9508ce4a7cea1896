// File: internal/model/role.go
package model

import "fmt"

// Role 使用者角色，僅允許下列三種值
type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleNormalUser  Role = "normal_user"
	RoleStoreOwner  Role = "store_owner"
)

// Roles 依固定順序列出所有角色
var Roles = []Role{RoleSystemAdmin, RoleNormalUser, RoleStoreOwner}

// ParseRole 將字串轉為 Role，未知值回傳錯誤
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSystemAdmin, RoleNormalUser, RoleStoreOwner:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q: must be one of system_admin, normal_user, store_owner", s)
}

// Valid 判斷是否為已知角色
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
