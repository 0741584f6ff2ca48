package handler

// Flash texts shown to the user after a redirect.
const (
	msgAccountExists   = "Username/Email already exists"
	msgRegistered      = "Registered successfully."
	msgInvalidLogin    = "Invalid username or password."
	msgLoggedOut       = "Logged Out Successfully!"
	msgInvalidEmail    = "Please provide a valid email address."
	msgInvalidUsername = "Please choose a username of at most 50 characters."
	msgInvalidPassword = "Please choose a password of at most 72 bytes."
	msgGenericError    = "Something went wrong. Please try again."

	msgVerified  = "Your Email has been verified."
	msgWrongCode = "Verification Code is Wrong."

	msgEmptyContent  = "Content cannot be empty."
	msgCreated       = "Diary Content Created Successfully"
	msgCreateFailed  = "Diary Content Could Not Be Created."
	msgUpdated       = "Updated Successfully."
	msgUpdateFailed  = "Diary Content Could Not Be Updated."
	msgDeleted       = "Diary Content Deleted Successfully."
	msgDeleteFailed  = "Diary Content Could Not Be Deleted."
	msgDiaryNotFound = "Diary content not found."
)
