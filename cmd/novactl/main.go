package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mdouchement/novatech/internal/client"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	dbname string
	codec  string
)

func main() {
	c := &cobra.Command{
		Use:     "novactl",
		Short:   "NovaTech content administration",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.PersistentFlags().StringVar(&dbname, "db", "", "Work on a local database instead of the logged in server")
	c.PersistentFlags().StringVar(&codec, "codec", database.DefaultCodec, "Codec of the local database")

	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	listCmd.Flags().StringP("query", "q", "", "Filter by title or name")
	c.AddCommand(listCmd)
	saveCmd.Flags().StringP("file", "f", "-", "JSON record file, - for stdin")
	c.AddCommand(saveCmd)
	c.AddCommand(deleteCmd)
	c.AddCommand(uploadCmd)
	c.AddCommand(queryCmd)
	c.AddCommand(dumpCmd)
	c.AddCommand(backupCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// content returns the local store when --db is given, the logged in server otherwise.
// The returned func releases the resources.
func content() (store.Content, func(), error) {
	if dbname == "" {
		c, err := client.Connect()
		return c, func() {}, err
	}

	db, err := database.StormOpen(dbname, codec, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not open database")
	}
	return store.New(db, store.Config{}), func() { db.Close() }, nil
}

func collection(name string) (model.Collection, error) {
	c, ok := model.ParseCollection(name)
	if !ok {
		return "", errors.Errorf("unknown collection: %s", name)
	}
	return c, nil
}

func jsondump(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize result")
	}
	fmt.Println(string(payload))
	return nil
}

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the novatech server as admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return client.Login(cmd.Context())
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from the novatech server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return client.Logout(cmd.Context())
		},
	}

	listCmd = &cobra.Command{
		Use:   "list COLLECTION",
		Short: "List the records of a collection (leads, projects, services, techstack)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := collection(args[0])
			if err != nil {
				return err
			}

			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			q, _ := cmd.Flags().GetString("query")
			records, err := client.List(cmd.Context(), s, c, q)
			if err != nil {
				return err
			}
			return jsondump(records)
		},
	}

	saveCmd = &cobra.Command{
		Use:   "save COLLECTION",
		Short: "Create a record or update the record with the given _id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := collection(args[0])
			if err != nil {
				return err
			}

			filename, _ := cmd.Flags().GetString("file")
			var payload []byte
			if filename == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(filename)
			}
			if err != nil {
				return errors.Wrap(err, "could not read record")
			}

			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			id, err := client.Save(cmd.Context(), s, c, payload)
			if err != nil {
				return err
			}

			fmt.Println("Saved", id)
			return nil
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete COLLECTION ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := collection(args[0])
			if err != nil {
				return err
			}

			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			if err = client.Delete(cmd.Context(), s, c, args[1]); err != nil {
				return err
			}

			fmt.Println("Deleted", args[1])
			return nil
		},
	}

	uploadCmd = &cobra.Command{
		Use:   "upload FILENAME",
		Short: "Print the data URI of an image, usable as project image or icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			uri, err := client.Upload(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}

			fmt.Println(uri)
			return nil
		},
	}

	// novactl query "SELECT Name FROM techStack WHERE Category = 'Frontend' ORDER BY Name"
	queryCmd = &cobra.Command{
		Use:   "query SQL",
		Short: "Run a SELECT statement over a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			v, err := client.Query(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}

			if n, ok := v.(int); ok {
				fmt.Println("Count:", n)
				return nil
			}
			return jsondump(v)
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump [COLLECTION...]",
		Short: "Dump the collections (all by default) as Go values",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections := model.Collections
			if len(args) > 0 {
				collections = nil
				for _, arg := range args {
					c, err := collection(arg)
					if err != nil {
						return err
					}
					collections = append(collections, c)
				}
			}

			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			for _, c := range collections {
				records, err := client.Fetch(cmd.Context(), s, c)
				if err != nil {
					return errors.Wrapf(err, "could not get %s", c)
				}

				fmt.Printf("// %s\n", c)
				litter.Dump(records)
			}
			return nil
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup [DIRECTORY]",
		Short: "Backup all the collections as JSON files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			s, release, err := content()
			if err != nil {
				return err
			}
			defer release()

			filenames, err := client.Backup(cmd.Context(), s, dir)
			for _, filename := range filenames {
				fmt.Println("Stored", filename)
			}
			return err
		},
	}
)
