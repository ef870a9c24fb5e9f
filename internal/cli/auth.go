package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/lexazver/teamboard/internal/common"
	"github.com/lexazver/teamboard/internal/models"
	"github.com/lexazver/teamboard/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing; they point to the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for account details and creates a new account. The new
// user still has to log in explicitly afterwards.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	details := services.SignupDetails{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := a.authService.Signup(ctx, details); err != nil {
		printlnFn("Signup failed:", err)
		return err
	}

	printlnFn("Account created, use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and signs the user in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	user := a.authService.CurrentUser()
	printlnFn(fmt.Sprintf("Welcome, %s %s (%s)", user.FirstName, user.LastName, user.Role))
	return nil
}

// Logout signs the user out. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Update prompts for profile fields, leaving blank ones untouched, and
// applies the patch.
func (a *App) Update(ctx context.Context) error {
	patch := services.ProfilePatch{}

	firstName, err := getSimpleText(a.reader, "First name (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if firstName != "" {
		patch.FirstName = &firstName
	}

	lastName, err := getSimpleText(a.reader, "Last name (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if lastName != "" {
		patch.LastName = &lastName
	}

	role, err := getSimpleText(a.reader, "Role (athlete/coach/parent/admin, blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if role != "" {
		r := models.Role(role)
		patch.Role = &r
	}

	photoURL, err := getSimpleText(a.reader, "Photo URL (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if photoURL != "" {
		patch.PhotoURL = &photoURL
	}

	if err := a.authService.UpdateProfile(ctx, patch); err != nil {
		printlnFn("Update failed:", err)
		return err
	}

	printlnFn("Profile updated.")
	return nil
}

// Whoami prints the signed-in user, if any.
func (a *App) Whoami(ctx context.Context) error {
	user := a.authService.CurrentUser()
	if user == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s %s <%s> role=%s", user.FirstName, user.LastName, user.Email, user.Role))
	return nil
}
