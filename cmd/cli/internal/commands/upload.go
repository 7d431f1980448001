package commands

import (
	"context"
	"fmt"
)

type UploadCmd struct {
	Files []string `arg:"" help:"Media files to upload" type:"existingfile"`
}

func (u *UploadCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if len(u.Files) == 1 {
		upload, err := app.client.UploadFile(ctx, u.Files[0])
		if err != nil {
			return err
		}
		fmt.Println(upload.URL)
		return nil
	}

	uploads, err := app.client.UploadFiles(ctx, u.Files)
	if err != nil {
		return err
	}
	for _, upload := range uploads {
		fmt.Println(upload.URL)
	}
	return nil
}
