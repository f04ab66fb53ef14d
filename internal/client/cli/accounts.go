package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/filex"
	"github.com/dmitrijs2005/eventhub/internal/netx"
)

func (a *App) printAccount(acc api.Account) {
	role := "user"
	if acc.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(a.out, "#%d %s <%s> %s, joined %s\n", acc.ID, acc.Username, acc.Email, role, acc.CreatedAt.Format("2006-01-02"))
}

// Me shows the signed-in account as the server currently has it.
func (a *App) Me(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.GetAccount(ctx, a.account.ID)
	if err != nil {
		return a.report(err)
	}
	a.printAccount(*acc)
	return nil
}

// parsePage reads "[start] [limit] [asc]".
func parsePage(args []string) (api.Page, error) {
	var p api.Page
	for i, arg := range args {
		if strings.EqualFold(arg, "asc") || strings.EqualFold(arg, "desc") {
			p.Order = strings.ToLower(arg)
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return p, fmt.Errorf("invalid page argument %q", arg)
		}
		if i == 0 {
			p.StartIndex = n
		} else {
			p.Limit = n
		}
	}
	return p, nil
}

// Users lists accounts. Only administrators may do this.
func (a *App) Users(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	page, err := parsePage(args)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.ListAccounts(ctx, page)
	if err != nil {
		return a.report(err)
	}
	for _, u := range resp.Users {
		a.printAccount(u)
	}
	fmt.Fprintf(a.out, "%d users in total, %d joined in the last month\n", resp.TotalUsers, resp.LastMonthUsers)
	return nil
}

// DeleteUser removes an account. Deleting the own account ends the session.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, 0, "user id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteAccount(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "User %d has been deleted\n", id)
	if id == a.account.ID {
		a.account = nil
	}
	return nil
}

// uploadFn is a test seam for netx.UploadToPresignedURL.
var uploadFn = netx.UploadToPresignedURL

// Upload requests a presigned upload URL for a profile picture or an event
// image. With a file path it also uploads the file, and a profile picture is
// then set on the signed-in account.
func (a *App) Upload(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return a.report(fmt.Errorf("usage: upload <profile|event> [file]"))
	}
	kind := args[0]

	var img *filex.Image
	if len(args) > 1 {
		var err error
		if img, err = filex.OpenImage(args[1]); err != nil {
			return a.report(err)
		}
		defer img.Close()
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	up, err := a.client.UploadURL(ctx, kind)
	if err != nil {
		return a.report(err)
	}
	if img == nil {
		fmt.Fprintf(a.out, "PUT the file to:\n%s\nthen store the key %s\n", up.URL, up.Key)
		return nil
	}

	if err := uploadFn(ctx, up.URL, img, img.Size, img.ContentType); err != nil {
		return a.report(err)
	}

	if kind != "profile" {
		fmt.Fprintf(a.out, "Uploaded, use the key %s as the event image\n", up.Key)
		return nil
	}
	key := up.Key
	acc, err := a.client.UpdateAccount(ctx, &api.UpdateAccountRequest{ID: a.account.ID, ProfilePicture: &key})
	if err != nil {
		return a.report(err)
	}
	a.account = acc
	fmt.Fprintln(a.out, "Profile picture updated")
	return nil
}
