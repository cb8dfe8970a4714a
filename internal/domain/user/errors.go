package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrUserHasAbsences        = errors.New("user still has absence records")
	ErrUserInactive           = errors.New("user account is inactive")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrCannotModifySelf       = errors.New("admins cannot modify their own account here")
	ErrCannotDeleteSelf       = errors.New("admins cannot delete their own account")
)
