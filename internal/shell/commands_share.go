package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/mallamanno/drivesh/internal/drive"
)

// cmdInfo prints verbose metadata about one remote file: identity,
// labels, timestamps, owners and sharing state.
func (s *Shell) cmdInfo(ctx context.Context, args []string) error {
	fs := newFlagSet("info")
	if err := parseFlags(fs, "info", usageInfo, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "info", usageInfo, 1, 1); err != nil {
		return err
	}

	resolved, _, err := s.resolvePath(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	// Re-fetch by ID to include the permission list
	file, err := s.drive.GetFile(ctx, resolved.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.stdout)
	s.printHeader("Identifying Information")
	s.printLabel("Display Name", file.Name)
	s.printLabel("Internal File ID", file.ID)
	fmt.Fprintln(s.stdout)

	var labels []string
	if file.Starred {
		labels = append(labels, "Starred")
	}
	if file.Shared {
		labels = append(labels, "Shared")
	}
	if file.Trashed {
		labels = append(labels, "Trashed")
	}
	if len(labels) > 0 {
		s.printHeader("File Labels")
		fmt.Fprintln(s.stdout, strings.Join(labels, ", "))
		fmt.Fprintln(s.stdout)
	}

	s.printHeader("Metadata")
	s.printLabel("Date Created", formatTime(file.CreatedTime))
	s.printLabel("Last Modified", formatTime(file.ModifiedTime))
	s.printLabel("File Type", file.MimeType)
	if file.Size > 0 {
		s.printLabel("Size", fmt.Sprintf("%d bytes", file.Size))
	}
	fmt.Fprintln(s.stdout)

	if len(file.Owners) > 0 {
		s.printHeader("Owners")
		owners := make([]string, len(file.Owners))
		for i, o := range file.Owners {
			owners[i] = fmt.Sprintf("%s <%s>", o.DisplayName, o.EmailAddress)
		}
		fmt.Fprintln(s.stdout, strings.Join(owners, ", "))
		fmt.Fprintln(s.stdout)
	}

	s.printHeader("Sharing Information")
	s.printLabel("Shared With Others", file.Shared)
	s.printLabel("Sharing Link Active", hasLinkPermission(file.Permissions))
	if file.WebViewLink != "" {
		s.printLabel("Sharing Link", file.WebViewLink)
	}
	fmt.Fprintln(s.stdout)

	userPerms := false
	for _, p := range file.Permissions {
		if p.Type == "anyone" {
			continue
		}
		if !userPerms {
			s.printHeader("User Permissions")
			userPerms = true
		}
		fmt.Fprintf(s.stdout, "%s %s %s\n",
			labelColor.Sprint("Name:")+" "+p.DisplayName,
			labelColor.Sprint("Email:")+" "+p.EmailAddress,
			labelColor.Sprint("Role:")+" "+p.Role)
	}
	if userPerms {
		fmt.Fprintln(s.stdout)
	}
	return nil
}

func hasLinkPermission(perms []drive.Permission) bool {
	for _, p := range perms {
		if p.Type == "anyone" {
			return true
		}
	}
	return false
}

// cmdShare manages the permissions of a remote file: grant a role to
// emails, create or remove an anyone-with-link permission, or revoke
// grants with --delete.
func (s *Shell) cmdShare(ctx context.Context, args []string) error {
	fs := newFlagSet("share")
	reader := fs.BoolP("reader", "r", false, "grant read access")
	writer := fs.BoolP("writer", "w", false, "grant read/write access")
	owner := fs.BoolP("owner", "o", false, "transfer ownership")
	link := fs.BoolP("link", "l", false, "share with anyone holding the link")
	del := fs.Bool("delete", false, "remove permissions instead of adding them")
	if err := parseFlags(fs, "share", usageShare, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "share", usageShare, 1, -1); err != nil {
		return err
	}

	role, err := shareRole(*reader, *writer, *owner)
	if err != nil {
		return &UsageError{Command: "share", Usage: usageShare, Reason: err.Error()}
	}

	file, _, err := s.resolvePath(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	emails := fs.Args()[1:]

	if *del {
		return s.revokePermissions(ctx, file, emails, *link)
	}

	if *link {
		if role == "" {
			role = "reader"
		}
		if role == "owner" {
			return &UsageError{Command: "share", Usage: usageShare,
				Reason: "ownership cannot be granted to a sharing link"}
		}
		if _, err := s.drive.ShareFile(ctx, file.ID, &drive.ShareOptions{
			Type: "anyone",
			Role: role,
		}); err != nil {
			return err
		}

		// Fetch the link to print it
		shared, err := s.drive.GetFile(ctx, file.ID)
		if err != nil {
			return err
		}
		s.printLabel("Sharable Link", shared.WebViewLink)
		return nil
	}

	if len(emails) == 0 {
		return &UsageError{Command: "share", Usage: usageShare,
			Reason: "no email was given and --link was not set"}
	}
	if role == "" {
		return &UsageError{Command: "share", Usage: usageShare,
			Reason: "no role was given, use one of --reader, --writer, --owner"}
	}

	for _, email := range emails {
		_, err := s.drive.ShareFile(ctx, file.ID, &drive.ShareOptions{
			Type:              "user",
			Role:              role,
			EmailAddress:      email,
			TransferOwnership: role == "owner",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// revokePermissions removes the link permission or the grants of the
// given emails.
func (s *Shell) revokePermissions(ctx context.Context, file *drive.FileInfo, emails []string, link bool) error {
	perms, err := s.drive.ListPermissions(ctx, file.ID)
	if err != nil {
		return err
	}

	if link {
		for _, p := range perms {
			if p.Type == "anyone" {
				return s.drive.RemovePermission(ctx, file.ID, p.ID)
			}
		}
		return fmt.Errorf("no sharing link exists for %q", file.Name)
	}

	if len(emails) == 0 {
		return &UsageError{Command: "share", Usage: usageShare,
			Reason: "no email was given and --link was not set"}
	}

	removed := make(map[string]bool, len(emails))
	for _, p := range perms {
		for _, email := range emails {
			if p.EmailAddress == email {
				if err := s.drive.RemovePermission(ctx, file.ID, p.ID); err != nil {
					return err
				}
				removed[email] = true
			}
		}
	}

	var missing []string
	for _, email := range emails {
		if !removed[email] {
			missing = append(missing, email)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no permissions exist for %s", strings.Join(missing, ", "))
	}
	return nil
}

// shareRole maps the role flags onto a Drive role name.
func shareRole(reader, writer, owner bool) (string, error) {
	count := 0
	role := ""
	if reader {
		count, role = count+1, "reader"
	}
	if writer {
		count, role = count+1, "writer"
	}
	if owner {
		count, role = count+1, "owner"
	}
	if count > 1 {
		return "", fmt.Errorf("at most one of --reader, --writer, --owner may be given")
	}
	return role, nil
}
