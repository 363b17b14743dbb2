package cli

import (
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-school-client/ebooks"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func bindFilter(cmd *cobra.Command, f *ebooks.Filter) {
	cmd.Flags().IntVar(&f.BoardID, "board", 0, "board ID")
	cmd.Flags().IntVar(&f.ClassID, "class", 0, "class ID")
	cmd.Flags().IntVar(&f.SubjectID, "subject", 0, "subject ID")
}

func newEbooksCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ebooks",
		Aliases: []string{"ebook"},
		Short:   "Upload, list and download syllabus ebooks",
	}

	var (
		listFilter ebooks.Filter
		all        bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of ebooks, or every page with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			svc := ebooks.NewService(client)
			if all {
				books, err := svc.All(cmd.Context(), listFilter)
				if err != nil {
					return err
				}
				return app.render(books)
			}
			page, err := svc.List(cmd.Context(), listFilter)
			if err != nil {
				return err
			}
			return app.render(page)
		},
	}
	bindFilter(list, &listFilter)
	list.Flags().IntVar(&listFilter.Page, "page", 1, "page number")
	list.Flags().BoolVar(&all, "all", false, "walk every page")

	var (
		upload    ebooks.UploadRequest
		chapterNo int
	)
	uploadCmd := &cobra.Command{
		Use:     "upload FILE.pdf",
		Short:   "Upload a PDF for a board, class and subject",
		Example: "  schoolctl ebooks upload algebra.pdf --board 1 --class 31 --subject 2 --chapter 4",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "[ebooks upload] %s", args[0])
			}
			defer f.Close()

			upload.Type = ebooks.UploadSingle
			if cmd.Flags().Changed("chapter") {
				upload.Type = ebooks.UploadChapterWise
				upload.ChapterNumber = chapterNo
			}
			upload.FileName = filepath.Base(args[0])
			upload.File = f

			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := ebooks.NewService(client).Upload(cmd.Context(), upload)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	uploadCmd.Flags().IntVar(&upload.BoardID, "board", 0, "board ID")
	uploadCmd.Flags().IntVar(&upload.ClassID, "class", 0, "class ID")
	uploadCmd.Flags().IntVar(&upload.SubjectID, "subject", 0, "subject ID")
	uploadCmd.Flags().IntVar(&chapterNo, "chapter", 0, "chapter number, files the upload chapter-wise")

	del := &cobra.Command{
		Use:   "delete EBOOK_ID",
		Short: "Delete an ebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "ebook id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := ebooks.NewService(client).Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}

	var (
		downloadFilter ebooks.Filter
		outFile        string
	)
	download := &cobra.Command{
		Use:   "download EBOOK_ID",
		Short: "Save an ebook's PDF",
		Long: `Find the ebook among the listing narrowed by --board, --class and --subject
and save its PDF to --to (default: the ebook name).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "ebook id")
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			svc := ebooks.NewService(client)
			books, err := svc.All(cmd.Context(), downloadFilter)
			if err != nil {
				return err
			}
			var book *ebooks.Ebook
			for i := range books {
				if books[i].ID == id {
					book = &books[i]
					break
				}
			}
			if book == nil {
				return apperrors.Wrapf(apperrors.ErrNotFound, "ebook %d", id)
			}

			path := outFile
			if path == "" {
				path = filepath.Base(book.Name)
				if filepath.Ext(path) != ".pdf" {
					path += ".pdf"
				}
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrapf(err, "[ebooks download] %s", path)
			}
			n, err := svc.Download(cmd.Context(), book, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(path)
				return err
			}
			app.printf("Saved %s (%d bytes)\n", path, n)
			return nil
		},
	}
	bindFilter(download, &downloadFilter)
	download.Flags().StringVar(&outFile, "to", "", "destination file")

	cmd.AddCommand(list, uploadCmd, del, download)
	return cmd
}
