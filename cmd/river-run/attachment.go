package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/attachment"
	"github.com/jackworthen/river-run/internal/river"
)

func newAttachmentCommand() *cobra.Command {
	attachmentCmd := &cobra.Command{
		Use:   "attachment",
		Short: "Manage file attachments on rivers",
	}

	attachmentCmd.AddCommand(
		newAttachmentAddCommand(),
		newAttachmentListCommand(),
		newAttachmentRemoveCommand(),
	)
	return attachmentCmd
}

func newAttachmentAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <river-id> <file>",
		Short: "Attach a file to a river",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			riverID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			cfg, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := river.NewDBRepository(db).FindByID(ctx, riverID)
			if err != nil {
				return err
			}

			store := attachment.NewStore(attachment.NewDBRepository(db), cfg.Storage.AttachmentsPath())
			a, err := store.Add(ctx, r.ID, args[1], description)
			if err != nil {
				return fmt.Errorf("store.Add() > %w", err)
			}
			fmt.Printf("Attached %q to %q (id %d)\n", a.FileName, r.Name, a.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Attachment description")
	return cmd
}

func newAttachmentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <river-id>",
		Short: "List a river's attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			riverID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			attachments, err := attachment.NewDBRepository(db).FindByRiver(ctx, riverID)
			if err != nil {
				return fmt.Errorf("failed to list attachments: %w", err)
			}

			if len(attachments) == 0 {
				fmt.Println("No attachments found.")
				return nil
			}
			for _, a := range attachments {
				line := fmt.Sprintf("%4d  %s (%d bytes)", a.ID, a.FileName, a.FileSize)
				if a.Description != "" {
					line += " - " + a.Description
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newAttachmentRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <attachment-id>",
		Short: "Remove an attachment and its stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid attachment id %q", args[0])
			}

			cfg, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			store := attachment.NewStore(attachment.NewDBRepository(db), cfg.Storage.AttachmentsPath())
			if err := store.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed attachment %d\n", id)
			return nil
		},
	}
}
