package http

import (
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func toOrder(o *order.ServiceOrder) Order {
	return fromOrderView(queries.NewOrderView(o))
}

func fromOrderView(v queries.OrderView) Order {
	resp := Order{
		Id:                v.ID.Bytes(),
		BoatId:            v.BoatID,
		Description:       v.Description,
		Diagnosis:         v.Diagnosis,
		TechnicianName:    v.TechnicianName,
		ScheduledAt:       v.ScheduledAt,
		EstimatedDuration: v.EstimatedDuration,
		Status:            OrderStatus(v.Status),
		TotalValue:        v.TotalValue.String(),
		CompletionCycle:   v.CompletionCycle,
		Version:           v.Version,
		Locked:            v.Locked,
		Items:             make([]Item, 0, len(v.Items)),
		Checklist:         make([]ChecklistItem, 0, len(v.Checklist)),
		TimeLogs:          make([]TimeLog, 0, len(v.TimeLogs)),
		Notes:             make([]Note, 0, len(v.Notes)),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, Item{
			Id:          it.ID.Bytes(),
			Kind:        it.Kind,
			PartId:      optionalID(it.PartID),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
			Total:       it.Total.String(),
		})
	}
	for _, c := range v.Checklist {
		resp.Checklist = append(resp.Checklist, ChecklistItem{Id: c.ID.Bytes(), Label: c.Label, Checked: c.Checked})
	}
	for _, tl := range v.TimeLogs {
		resp.TimeLogs = append(resp.TimeLogs, TimeLog{Id: tl.ID.Bytes(), Start: tl.Start, End: tl.End})
	}
	for _, n := range v.Notes {
		resp.Notes = append(resp.Notes, Note{Id: n.ID.Bytes(), Text: n.Text, Author: n.Author, CreatedAt: n.CreatedAt})
	}
	return resp
}

func toOrderSummaries(views []queries.OrderSummary) []OrderSummary {
	out := make([]OrderSummary, 0, len(views))
	for _, v := range views {
		out = append(out, OrderSummary{
			Id:             v.ID.Bytes(),
			BoatId:         v.BoatID,
			Description:    v.Description,
			TechnicianName: v.TechnicianName,
			ScheduledAt:    v.ScheduledAt,
			Status:         OrderStatus(v.Status),
			TotalValue:     v.TotalValue.String(),
			CreatedAt:      v.CreatedAt,
			UpdatedAt:      v.UpdatedAt,
		})
	}
	return out
}

func toPart(p *part.Part) Part {
	return Part{
		Id:       p.ID().Bytes(),
		Sku:      p.SKU(),
		Name:     p.Name(),
		Quantity: p.Quantity(),
		MinStock: p.MinStock(),
		Price:    p.Price().String(),
		Cost:     p.Cost().String(),
	}
}

func toParts(views []queries.PartView) []Part {
	out := make([]Part, 0, len(views))
	for _, v := range views {
		out = append(out, Part{
			Id:       v.ID.Bytes(),
			Sku:      v.SKU,
			Name:     v.Name,
			Quantity: v.Quantity,
			MinStock: v.MinStock,
			Price:    v.Price.String(),
			Cost:     v.Cost.String(),
		})
	}
	return out
}

func toStockMovement(m *part.StockMovement) StockMovement {
	return StockMovement{
		Id:         m.ID().Bytes(),
		PartId:     m.PartID().Bytes(),
		OrderId:    optionalID(m.OrderID()),
		Delta:      m.Delta(),
		Reason:     m.Reason().String(),
		ReversalOf: optionalID(m.ReversalOf()),
		Note:       m.Note(),
		CreatedAt:  m.CreatedAt(),
	}
}

func toStockMovements(views []queries.StockMovementView) []StockMovement {
	out := make([]StockMovement, 0, len(views))
	for _, v := range views {
		out = append(out, StockMovement{
			Id:         v.ID.Bytes(),
			PartId:     v.PartID.Bytes(),
			OrderId:    optionalID(v.OrderID),
			Delta:      v.Delta,
			Reason:     v.Reason,
			ReversalOf: optionalID(v.ReversalOf),
			Note:       v.Note,
			CreatedAt:  v.CreatedAt,
		})
	}
	return out
}

func toTransactions(views []queries.TransactionView) []Transaction {
	out := make([]Transaction, 0, len(views))
	for _, v := range views {
		out = append(out, Transaction{
			Id:          v.ID.Bytes(),
			OrderId:     optionalID(v.OrderID),
			Type:        v.Type,
			Category:    v.Category,
			Description: v.Description,
			Amount:      v.Amount.String(),
			Status:      v.Status,
			CreatedAt:   v.CreatedAt,
			VoidedAt:    v.VoidedAt,
		})
	}
	return out
}
