package cli

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrijs2005/growflow/internal/filex"
)

func (a *App) List(ctx context.Context) error {
	tasks, err := a.taskService.List(ctx)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	renderGarden(a.out, tasks)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	t, err := a.taskService.Show(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	renderTask(a.out, t)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	name, err := getRequiredText(a.reader, "Task name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	plantType, err := getRequiredText(a.reader, "Plant type (e.g. rose, fern, cactus)", a.out)
	if err != nil {
		return err
	}

	t, err := a.taskService.Add(ctx, name, description, plantType)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	fmt.Fprintf(a.out, "Planted a %s: %s (%s)\n", t.PlantType, t.Name, t.ID)
	return nil
}

func (a *App) setCompleted(ctx context.Context, id string, completed bool) error {
	before, err := a.taskService.Show(ctx, id)
	if err != nil {
		return a.report(err)
	}

	t, err := a.taskService.SetCompleted(ctx, id, completed)
	if err != nil {
		return a.report(err)
	}
	a.ok()

	switch {
	case t.GrowthStage > before.GrowthStage && t.Bloomed():
		fmt.Fprintf(a.out, "%s is in full bloom! %s\n", t.Name, t.Plant())
	case t.GrowthStage > before.GrowthStage:
		fmt.Fprintf(a.out, "%s grew to stage %d %s\n", t.Name, t.GrowthStage, t.Plant())
	default:
		fmt.Fprintf(a.out, "%s %s %s\n", checkbox(t.Completed), t.Name, t.Plant())
	}
	return nil
}

func (a *App) Done(ctx context.Context, id string) error {
	return a.setCompleted(ctx, id, true)
}

// Undo reopens a task. The plant keeps its size.
func (a *App) Undo(ctx context.Context, id string) error {
	return a.setCompleted(ctx, id, false)
}

func (a *App) Rename(ctx context.Context, id string) error {
	name, err := getRequiredText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}

	t, err := a.taskService.Rename(ctx, id, name)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	fmt.Fprintf(a.out, "Renamed to %s\n", t.Name)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.taskService.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	a.ok()
	fmt.Fprintln(a.out, "Task removed")
	return nil
}

func (a *App) Snapshot(ctx context.Context) error {
	s, err := a.taskService.Snapshot(ctx)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	fmt.Fprintf(a.out, "Snapshot saved as %s\nDownload (valid for 15 minutes): %s\n", s.Key, s.URL)

	if a.download == nil {
		return nil
	}
	data, err := a.download(ctx, s.URL)
	if err != nil {
		fmt.Fprintf(a.out, "Could not fetch a local copy: %v\n", err)
		return nil
	}
	saved, err := filex.WriteFile(a.snapshotDir, path.Base(s.Key), data)
	if err != nil {
		fmt.Fprintf(a.out, "Could not save a local copy: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "Local copy: %s\n", saved)
	return nil
}
