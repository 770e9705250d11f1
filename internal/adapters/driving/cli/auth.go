package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the hospital backend",
	Long: `Sign in with your Good Eyes username and password. The password is read
without echo when stdin is a terminal, or from the first line of stdin
otherwise. The session is stored under the frontdesk home directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and their permissions",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if authService == nil {
		return errNoAuth
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		cmd.Print("Username: ")
		username = readLine(reader)
	}

	cmd.Print("Password: ")
	password := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()

	session, err := authService.Login(commandContext(cmd), domain.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAuthInvalid) {
			return errors.New("login failed: wrong username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Signed in as %s\n", session.DisplayName())
	if session.PasswordChangeRequired {
		cmd.Println("Your password must be changed before using the web application.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuth
	}
	if err := authService.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuth
	}

	session, err := authService.Session()
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			cmd.Println("Not signed in. Run \"frontdesk login\".")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	perms := authService.Permissions()
	cmd.Printf("User:     %s\n", session.DisplayName())
	cmd.Printf("Username: %s\n", session.Username)
	if session.Email != "" {
		cmd.Printf("Email:    %s\n", session.Email)
	}
	roles := "(none)"
	if len(session.Roles) > 0 {
		roles = strings.Join(session.Roles, ", ")
	}
	cmd.Printf("Roles:    %s\n", roles)
	cmd.Println()
	cmd.Println("Permissions:")
	for _, p := range []struct {
		label   string
		allowed bool
	}{
		{"Record consumable usage", perms.CanRecordUsage()},
		{"Create patients", perms.CanCreatePatients},
		{"Update patients", perms.CanUpdatePatients},
		{"Delete patients", perms.CanDeletePatients},
	} {
		mark := "no"
		if p.allowed {
			mark = "yes"
		}
		cmd.Printf("  %-24s %s\n", p.label, mark)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when in is a terminal, else a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}
