// Package policy holds the authorization rules for users and messages.
// Every rule is a pure function of the actor and the target.
package policy

import "messagely/internal/model"

// IsParticipant reports whether actor sent or received msg
func IsParticipant(actor string, msg *model.MessageDetail) bool {
	return actor == msg.FromUser.Username || actor == msg.ToUser.Username
}

// CanViewMessage allows only the sender and the recipient
func CanViewMessage(actor string, msg *model.MessageDetail) bool {
	return actor != "" && IsParticipant(actor, msg)
}

// CanMarkRead allows only the recipient; a sender can never mark their own message read
func CanMarkRead(actor string, msg *model.MessageDetail) bool {
	return actor != "" && actor == msg.ToUser.Username
}

// CanCreateMessage allows any authenticated actor
func CanCreateMessage(actor string) bool {
	return actor != ""
}

// CanViewUser allows a user to see only their own profile and message lists
func CanViewUser(actor, username string) bool {
	return actor != "" && actor == username
}

// CanListUsers allows any authenticated actor
func CanListUsers(actor string) bool {
	return actor != ""
}
