package cli

import (
	"github.com/jrsteele09/go-school-client/students"
	"github.com/jrsteele09/go-school-client/teachers"
	"github.com/spf13/cobra"
)

func newTeachersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teachers",
		Aliases: []string{"teacher"},
		Short:   "Manage teachers",
	}

	var listSchool int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the teachers of a school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			list, err := teachers.NewService(client).ListBySchool(cmd.Context(), listSchool)
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}
	list.Flags().IntVar(&listSchool, "school", 0, "school ID (super admin only)")

	var getScope scope
	get := &cobra.Command{
		Use:   "get TEACHER_ID",
		Short: "Show a teacher and their subject assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "teacher id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			teacher, err := teachers.NewService(client).GetByID(cmd.Context(), getScope.schoolID, id, getScope.yearID)
			if err != nil {
				return err
			}
			return app.render(teacher)
		},
	}
	getScope.bind(get)

	var addFile string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a teacher account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req teachers.AddRequest
			if err := app.readRequest(addFile, &req); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := teachers.NewService(client).Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	add.Flags().StringVarP(&addFile, "file", "f", "", "YAML or JSON request document, - for stdin")

	var updateFile string
	update := &cobra.Command{
		Use:   "update TEACHER_ID",
		Short: "Update a teacher from a request document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "teacher id")
			if err != nil {
				return err
			}
			var req teachers.UpdateRequest
			if err := app.readRequest(updateFile, &req); err != nil {
				return err
			}
			req.TeacherID = id
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := teachers.NewService(client).Update(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "YAML or JSON request document, - for stdin")

	var deleteSchool int
	del := &cobra.Command{
		Use:   "delete TEACHER_ID",
		Short: "Delete a teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "teacher id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := teachers.NewService(client).Delete(cmd.Context(), deleteSchool, id)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	del.Flags().IntVar(&deleteSchool, "school", 0, "school ID (super admin only)")

	cmd.AddCommand(list, get, add, update, del)
	return cmd
}

func newStudentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"student"},
		Short:   "Manage students",
	}

	var (
		listScope scope
		classID   int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List the students of a school, or of one class with --class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			svc := students.NewService(client)
			var list []students.Student
			if cmd.Flags().Changed("class") {
				list, err = svc.ListByClass(cmd.Context(), listScope.schoolID, classID, listScope.yearID)
			} else {
				list, err = svc.ListBySchool(cmd.Context(), listScope.schoolID, listScope.yearID)
			}
			if err != nil {
				return err
			}
			return app.render(list)
		},
	}
	listScope.bind(list)
	list.Flags().IntVar(&classID, "class", 0, "class ID")

	var getScope scope
	get := &cobra.Command{
		Use:   "get STUDENT_ID",
		Short: "Show a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			student, err := students.NewService(client).GetByID(cmd.Context(), getScope.schoolID, id, getScope.yearID)
			if err != nil {
				return err
			}
			return app.render(student)
		},
	}
	getScope.bind(get)

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Enrol a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req students.CreateRequest
			if err := app.readRequest(createFile, &req); err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			id, err := students.NewService(client).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.printf("Student %d created\n", id)
			return nil
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "YAML or JSON request document, - for stdin")

	var updateFile string
	update := &cobra.Command{
		Use:   "update STUDENT_ID",
		Short: "Update a student from a request document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			var req students.UpdateRequest
			if err := app.readRequest(updateFile, &req); err != nil {
				return err
			}
			req.StudentID = id
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := students.NewService(client).Update(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "YAML or JSON request document, - for stdin")

	var deleteSchool int
	del := &cobra.Command{
		Use:   "delete STUDENT_ID",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := students.NewService(client).Delete(cmd.Context(), deleteSchool, id)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	del.Flags().IntVar(&deleteSchool, "school", 0, "school ID (super admin only)")

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
