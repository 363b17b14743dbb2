package cli

import (
	"strconv"

	"github.com/jrsteele09/go-school-client/academics"
	"github.com/jrsteele09/go-school-client/classes"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/schools"
	"github.com/jrsteele09/go-school-client/subjects"
	"github.com/spf13/cobra"
)

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s must be a positive number, got %q", what, arg)
	}
	return id, nil
}

func newSchoolsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schools",
		Aliases: []string{"school"},
		Short:   "Manage schools (super admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := schools.NewService(client).List(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}

	get := &cobra.Command{
		Use:   "get SCHOOL_ID",
		Short: "Show a school and its admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "school id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			school, err := schools.NewService(client).GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.render(school)
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a school with its admin account",
		Example: `  schoolctl schools create -f school.yaml

  # school.yaml
  school_name: Green Valley High
  address: 1 Hill Road
  contact_number: "0801234567"
  admin_email: admin@greenvalley.test
  admin_username: gv.admin
  password: Adm1n!pass
  admin_phone_number: "0807654321"
  admin_first_name: Asha
  boards: [1]
  academic_start_year: 2025
  academic_end_year: 2026`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req schools.CreateRequest
			if err := app.readRequest(createFile, &req); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := schools.NewService(client).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "YAML or JSON request document, - for stdin")

	var upd schools.UpdateRequest
	update := &cobra.Command{
		Use:   "update SCHOOL_ID",
		Short: "Change a school's contact details or boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "school id")
			if err != nil {
				return err
			}
			upd.SchoolID = id
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := schools.NewService(client).Update(cmd.Context(), upd)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "school name")
	update.Flags().StringVar(&upd.Address, "address", "", "postal address")
	update.Flags().StringVar(&upd.ContactNumber, "contact", "", "contact number")
	update.Flags().StringVar(&upd.Email, "email", "", "contact email")
	update.Flags().IntSliceVar(&upd.Boards, "boards", nil, "board IDs, replaces the current mapping")

	boards := &cobra.Command{
		Use:   "boards",
		Short: "List the examination boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := schools.NewService(client).ListBoards(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}

	cmd.AddCommand(list, get, create, update, boards)
	return cmd
}

// scope holds the --school and --year flags shared by the per-school commands.
type scope struct {
	schoolID int
	yearID   int
}

func (s *scope) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.schoolID, "school", 0, "school ID (super admin only, admins use their own)")
	cmd.Flags().IntVar(&s.yearID, "year", 0, "academic year ID (default: the active year)")
}

func newClassesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "classes",
		Aliases: []string{"class"},
		Short:   "Manage classes and class teachers",
	}

	var (
		listScope  scope
		unassigned bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List the classes of a school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := classes.NewService(client).ListBySchool(cmd.Context(), listScope.schoolID, listScope.yearID)
			if err != nil {
				return err
			}
			if unassigned {
				open := list[:0]
				for _, c := range list {
					if !c.HasTeacher() {
						open = append(open, c)
					}
				}
				list = open
			}
			return app.render(list)
		},
	}
	listScope.bind(list)
	list.Flags().BoolVar(&unassigned, "no-teacher", false, "only classes without a class teacher")

	var getScope scope
	get := &cobra.Command{
		Use:   "get CLASS_ID",
		Short: "Show a class with its students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "class id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			class, err := classes.NewService(client).GetByID(cmd.Context(), getScope.schoolID, id, getScope.yearID)
			if err != nil {
				return err
			}
			return app.render(class)
		},
	}
	getScope.bind(get)

	var req classes.CreateRequest
	create := &cobra.Command{
		Use:     "create",
		Short:   "Create a class section",
		Example: "  schoolctl classes create --number 5 --section A --board 1 --teacher 9",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			created, err := classes.NewService(client).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return app.render(created)
		},
	}
	create.Flags().IntVar(&req.SchoolID, "school", 0, "school ID (super admin only)")
	create.Flags().IntVar(&req.ClassNumber, "number", 0, "class number, e.g. 5")
	create.Flags().StringVar(&req.Section, "section", "", "section, e.g. A")
	create.Flags().IntVar(&req.BoardID, "board", 0, "board ID")
	create.Flags().IntVar(&req.TeacherID, "teacher", 0, "class teacher ID")
	create.Flags().IntVar(&req.AcademicYearID, "year", 0, "academic year ID (default: the active year)")

	var assign classes.UpdateRequest
	setTeacher := &cobra.Command{
		Use:   "set-teacher CLASS_ID TEACHER_ID",
		Short: "Assign the class teacher",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if assign.ClassID, err = parseID(args[0], "class id"); err != nil {
				return err
			}
			if assign.TeacherID, err = parseID(args[1], "teacher id"); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := classes.NewService(client).Update(cmd.Context(), assign)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	setTeacher.Flags().IntVar(&assign.SchoolID, "school", 0, "school ID (super admin only)")
	setTeacher.Flags().IntVar(&assign.AcademicYearID, "year", 0, "academic year ID (default: the active year)")

	available := &cobra.Command{
		Use:   "available",
		Short: "List the class numbers that can be created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := classes.NewService(client).ListAvailable(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}

	cmd.AddCommand(list, get, create, setTeacher, available)
	return cmd
}

func newSubjectsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subjects",
		Aliases: []string{"subject"},
		Short:   "Manage subjects",
	}

	var listSchool int
	list := &cobra.Command{
		Use:   "list",
		Short: "List subjects (the defaults, or a school's with --school)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := subjects.NewService(client).ListBySchool(cmd.Context(), listSchool)
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}
	list.Flags().IntVar(&listSchool, "school", 0, "school ID")

	var add subjects.AddRequest
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			add.Name = args[0]
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			id, err := subjects.NewService(client).Add(cmd.Context(), add)
			if err != nil {
				return err
			}
			app.printf("Subject %d created\n", id)
			return nil
		},
	}
	addCmd.Flags().IntVar(&add.SchoolID, "school", 0, "school ID (super admin only)")

	var rename subjects.RenameRequest
	renameCmd := &cobra.Command{
		Use:   "rename SUBJECT_ID NAME",
		Short: "Rename a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "subject id")
			if err != nil {
				return err
			}
			rename.SubjectID, rename.Name = id, args[1]
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := subjects.NewService(client).Rename(cmd.Context(), rename)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	renameCmd.Flags().IntVar(&rename.SchoolID, "school", 0, "school ID (super admin only)")

	cmd.AddCommand(list, addCmd, renameCmd)
	return cmd
}

func newAcademicsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "academics",
		Aliases: []string{"years"},
		Short:   "Manage academic years",
	}

	var (
		listSchool int
		activeOnly bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List academic years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			years, err := academics.NewService(client).List(cmd.Context(), listSchool)
			if err != nil {
				return err
			}
			if activeOnly {
				active := academics.Active(years)
				if active == nil {
					return apperrors.Wrapf(apperrors.ErrNotFound, "no active academic year")
				}
				return app.render(active)
			}
			return app.render(years)
		},
	}
	list.Flags().IntVar(&listSchool, "school", 0, "school ID (super admin only)")
	list.Flags().BoolVar(&activeOnly, "active", false, "only show the active year")

	var add academics.CreateRequest
	addCmd := &cobra.Command{
		Use:     "add START_YEAR END_YEAR",
		Short:   "Add an academic year",
		Example: "  schoolctl academics add 2025 2026",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if add.StartYear, err = parseID(args[0], "start year"); err != nil {
				return err
			}
			if add.EndYear, err = parseID(args[1], "end year"); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			year, err := academics.NewService(client).Create(cmd.Context(), add)
			if err != nil {
				return err
			}
			return app.render(year)
		},
	}
	addCmd.Flags().IntVar(&add.SchoolID, "school", 0, "school ID (super admin only)")

	var upd academics.UpdateRequest
	updateCmd := &cobra.Command{
		Use:   "update YEAR_ID START_YEAR END_YEAR",
		Short: "Change the years of an academic year",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if upd.AcademicYearID, err = parseID(args[0], "academic year id"); err != nil {
				return err
			}
			if upd.StartYear, err = parseID(args[1], "start year"); err != nil {
				return err
			}
			if upd.EndYear, err = parseID(args[2], "end year"); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			year, err := academics.NewService(client).Update(cmd.Context(), upd)
			if err != nil {
				return err
			}
			return app.render(year)
		},
	}
	updateCmd.Flags().IntVar(&upd.SchoolID, "school", 0, "school ID (super admin only)")

	cmd.AddCommand(list, addCmd, updateCmd)
	return cmd
}
