package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/msomdec/edunova/internal/app"
	"github.com/msomdec/edunova/internal/config"
	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/viewmodel"
)

var errUnknownCommand = errors.New("unknown command")

type commandFn func(c *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
}

func (c *commandContext) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func commandList() []command {
	return []command{
		{"login", "login <email> <password>", "Sign in and store the session locally", withApp(runLogin)},
		{"register", "register <first> <last> <email> <password>", "Create an account and sign in", withApp(runRegister)},
		{"logout", "logout", "End the current session", withApp(runLogout)},
		{"whoami", "whoami", "Show the logged-in user", withApp(runWhoami)},
		{"refresh", "refresh", "Renew the session token", withApp(runRefresh)},
		{"courses", "courses [-force]", "List courses, from the cache unless -force", withApp(runCourses)},
		{"course", "course <id>", "Show one course", withApp(runCourse)},
		{"teacher-courses", "teacher-courses <teacherID>", "List the courses of a teacher", withApp(runTeacherCourses)},
		{"create-course", "create-course <title> <teacherID> [description]", "Create a course", withApp(runCreateCourse)},
		{"update-course", "update-course <id> <title> <teacherID> [description]", "Update a course", withApp(runUpdateCourse)},
		{"delete-course", "delete-course <id>", "Delete a course", withApp(runDeleteCourse)},
		{"profile", "profile", "Show the profile of the logged-in user", withApp(runProfile)},
		{"profiles", "profiles [-force] [-role student|teacher]", "List profiles", withApp(runProfiles)},
		{"users", "users", "List accounts (admin)", withApp(runUsers)},
		{"delete-user", "delete-user <id>", "Delete an account (admin)", withApp(runDeleteUser)},
		{"sessions", "sessions", "List server sessions", withApp(runSessions)},
		{"delete-session", "delete-session <id>", "Revoke a server session", withApp(runDeleteSession)},
		{"sync", "sync", "Refresh the course and profile caches", withApp(runSync)},
		{"reset-sessions", "reset-sessions", "Log every local account out", withApp(runResetSessions)},
		{"reset-cache", "reset-cache [-users]", "Empty the course and profile caches", withApp(runResetCache)},
		{"local-users", "local-users", "List accounts stored locally", withApp(runLocalUsers)},
		{"verify-store", "verify-store", "Round-trip a throwaway record through the local store", withApp(runVerifyStore)},
		{"serve-mock", "serve-mock [-addr :8080]", "Run the in-memory EduNova backend", runServeMock},
	}
}

func dispatch(c *commandContext, name string, args []string) error {
	for _, cmd := range commandList() {
		if cmd.name == name {
			return cmd.run(c, args)
		}
	}
	return fmt.Errorf("%w %q", errUnknownCommand, name)
}

// withApp opens the client for the duration of one command.
func withApp(fn func(c *commandContext, a *app.App, args []string) error) commandFn {
	return func(c *commandContext, args []string) error {
		a, err := app.New(c.Ctx, c.Config, c.Logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				c.Logger.Warn("close local store", "error", err)
			}
		}()
		return fn(c, a, args)
	}
}

func wantArgs(args []string, lo, hi int, usage string) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: usage: edunova %s", domain.ErrInvalidInput, usage)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}

// stateError turns a view model error message into a command failure.
func stateError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

// Auth

func runLogin(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 2, 2, "login <email> <password>"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	return printAttempt(c, vm.Login(c.Ctx, args[0], args[1]), func(s viewmodel.AuthState) *domain.AuthPayload { return s.Login })
}

func runRegister(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 4, 4, "register <first> <last> <email> <password>"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	state := vm.Register(c.Ctx, args[0], args[1], args[2], args[3])
	return printAttempt(c, state, func(s viewmodel.AuthState) *domain.AuthPayload { return s.Register })
}

func printAttempt(c *commandContext, s viewmodel.AuthState, payload func(viewmodel.AuthState) *domain.AuthPayload) error {
	if err := stateError(s.ErrorMessage); err != nil {
		return err
	}
	p := payload(s)
	if p == nil || !p.Success {
		msg := "authentication rejected"
		if p != nil && p.Message != "" {
			msg = p.Message
		}
		return errors.New(msg)
	}
	if p.Message != "" {
		c.printf("%s\n", p.Message)
	}
	if p.User != nil {
		printUser(c, p.User)
	}
	return nil
}

func runLogout(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "logout"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	if err := stateError(vm.Logout(c.Ctx).ErrorMessage); err != nil {
		return err
	}
	c.printf("logged out\n")
	return nil
}

func runWhoami(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "whoami"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	user := vm.State().User
	if user == nil {
		c.printf("not logged in\n")
		return nil
	}
	printUser(c, user)
	return nil
}

func runRefresh(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "refresh"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	state := vm.RefreshToken(c.Ctx)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	c.printf("token renewed\n")
	if state.User != nil {
		printUser(c, state.User)
	}
	return nil
}

func runResetSessions(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "reset-sessions"); err != nil {
		return err
	}
	vm := viewmodel.NewAuthViewModel(c.Ctx, a.Auth)
	defer vm.Close()
	if err := vm.ClearAllSessions(c.Ctx); err != nil {
		return err
	}
	c.printf("all local sessions cleared\n")
	return nil
}

func runResetCache(c *commandContext, a *app.App, args []string) error {
	fs := flag.NewFlagSet("reset-cache", flag.ContinueOnError)
	fs.SetOutput(c.Out)
	users := fs.Bool("users", false, "Also delete every locally stored account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs.Args(), 0, 0, "reset-cache [-users]"); err != nil {
		return err
	}
	if err := a.ResetCache(c.Ctx, *users); err != nil {
		return err
	}
	if *users {
		c.printf("local caches and accounts cleared\n")
	} else {
		c.printf("local caches cleared\n")
	}
	return nil
}

func runLocalUsers(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "local-users"); err != nil {
		return err
	}
	printUsers(c, a.Auth.ListLocalUsers(c.Ctx))
	return nil
}

func runVerifyStore(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "verify-store"); err != nil {
		return err
	}
	if err := a.Auth.VerifyStore(c.Ctx).Err(); err != nil {
		return err
	}
	c.printf("local store ok\n")
	return nil
}

// Courses

func runCourses(c *commandContext, a *app.App, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	fs.SetOutput(c.Out)
	force := fs.Bool("force", false, "Bypass the cache and replace it with the server's list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs.Args(), 0, 0, "courses [-force]"); err != nil {
		return err
	}

	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).FetchCourses(c.Ctx, *force)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	printCourses(c, state.Courses)
	return nil
}

func runCourse(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 1, 1, "course <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).GetCourse(c.Ctx, id)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	printCourse(c, state.Course)
	return nil
}

func runTeacherCourses(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 1, 1, "teacher-courses <teacherID>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).FetchCoursesByTeacher(c.Ctx, id)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	printCourses(c, state.TeacherCourses)
	return nil
}

func courseInput(title, teacher string, rest []string) (domain.CourseInput, error) {
	teacherID, err := parseID(teacher)
	if err != nil {
		return domain.CourseInput{}, err
	}
	in := domain.CourseInput{Title: title, TeacherID: teacherID}
	if len(rest) > 0 {
		in.Description = rest[0]
	}
	return in, nil
}

func runCreateCourse(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 2, 3, "create-course <title> <teacherID> [description]"); err != nil {
		return err
	}
	in, err := courseInput(args[0], args[1], args[2:])
	if err != nil {
		return err
	}
	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).CreateCourse(c.Ctx, in)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	c.printf("%s\n", state.SuccessMessage)
	printCourse(c, state.Course)
	return nil
}

func runUpdateCourse(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 3, 4, "update-course <id> <title> <teacherID> [description]"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := courseInput(args[1], args[2], args[3:])
	if err != nil {
		return err
	}
	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).UpdateCourse(c.Ctx, id, in)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	c.printf("%s\n", state.SuccessMessage)
	printCourse(c, state.Course)
	return nil
}

func runDeleteCourse(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 1, 1, "delete-course <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	state := viewmodel.NewCourseViewModel(c.Ctx, a.Auth, a.Courses).DeleteCourse(c.Ctx, id)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	c.printf("%s\n", state.SuccessMessage)
	return nil
}

// Profiles

func runProfile(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "profile"); err != nil {
		return err
	}
	state := viewmodel.NewProfileViewModel(a.Auth, a.Profiles).GetProfile(c.Ctx)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	printProfile(c, state.Profile)
	return nil
}

func runProfiles(c *commandContext, a *app.App, args []string) error {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	fs.SetOutput(c.Out)
	force := fs.Bool("force", false, "Bypass the cache and replace it with the server's list")
	role := fs.String("role", "", "Only show cached profiles with this role (student or teacher)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs.Args(), 0, 0, "profiles [-force] [-role student|teacher]"); err != nil {
		return err
	}

	state := viewmodel.NewProfileViewModel(a.Auth, a.Profiles).FetchProfiles(c.Ctx, *force)
	if err := stateError(state.ErrorMessage); err != nil {
		return err
	}
	profiles := state.Profiles
	if *role != "" {
		res := a.Profiles.CachedProfilesByRole(c.Ctx, strings.ToLower(*role))
		if err := res.Err(); err != nil {
			return err
		}
		profiles = res.Data()
	}
	printProfiles(c, profiles)
	return nil
}

// Administration

func sessionToken(ctx context.Context, a *app.App) (string, error) {
	token, ok := a.Auth.AuthToken(ctx)
	if !ok {
		return "", errors.New(viewmodel.MsgMissingToken)
	}
	return token, nil
}

func runUsers(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "users"); err != nil {
		return err
	}
	token, err := sessionToken(c.Ctx, a)
	if err != nil {
		return err
	}
	res := a.Users.ListUsers(c.Ctx, token)
	if err := res.Err(); err != nil {
		return err
	}
	printUsers(c, res.Data())
	return nil
}

func runDeleteUser(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 1, 1, "delete-user <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	token, err := sessionToken(c.Ctx, a)
	if err != nil {
		return err
	}
	if err := a.Users.DeleteUser(c.Ctx, id, token).Err(); err != nil {
		return err
	}
	c.printf("user %d deleted\n", id)
	return nil
}

func runSessions(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "sessions"); err != nil {
		return err
	}
	token, err := sessionToken(c.Ctx, a)
	if err != nil {
		return err
	}
	res := a.Sessions.ListSessions(c.Ctx, token)
	if err := res.Err(); err != nil {
		return err
	}
	printSessions(c, res.Data())
	return nil
}

func runDeleteSession(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 1, 1, "delete-session <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	token, err := sessionToken(c.Ctx, a)
	if err != nil {
		return err
	}
	if err := a.Sessions.DeleteSession(c.Ctx, id, token).Err(); err != nil {
		return err
	}
	c.printf("session %d revoked\n", id)
	return nil
}

func runSync(c *commandContext, a *app.App, args []string) error {
	if err := wantArgs(args, 0, 0, "sync"); err != nil {
		return err
	}
	report, err := a.Sync(c.Ctx)
	if err != nil {
		return err
	}
	c.printf("synced %d courses and %d profiles\n", report.Courses, report.Profiles)
	if !report.Fresh() {
		c.printf("backend unreachable, kept %d cached courses and %d cached profiles\n",
			report.StaleCourses, report.StaleProfiles)
	}
	return nil
}
