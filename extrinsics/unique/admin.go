package unique

import (
	"go-unique-sdk/models"
	"go-unique-sdk/transaction"
	"go-unique-sdk/utils"

	"github.com/pkg/errors"
)

const Module = "Unique"

type (
	AddCollectionAdminParams struct {
		CollectionID    models.CollectionID `json:"collectionId"`
		NewAdminAddress string              `json:"newAdminAddress"`
	}

	RemoveCollectionAdminParams struct {
		CollectionID models.CollectionID `json:"collectionId"`
		AdminAddress string              `json:"adminAddress"`
	}

	// AdminResult is the outcome of adding or removing a collection admin
	AdminResult struct {
		models.ExtrinsicResult
		CollectionID models.CollectionID   `json:"collectionId"`
		Admin        models.CrossAccountID `json:"admin"`
	}

	AddCollectionAdminTx    = transaction.Transaction[AddCollectionAdminParams, AdminResult]
	RemoveCollectionAdminTx = transaction.Transaction[RemoveCollectionAdminParams, AdminResult]

	// AdminCall describes one collection admin extrinsic. Copy one of the package values and
	// replace Success to change how the marker event is judged.
	AdminCall struct {
		Name    string
		Method  string
		Event   string
		Success SuccessPredicate
	}
)

var (
	AddCollectionAdmin = AdminCall{
		Name:    "unique.addCollectionAdmin",
		Method:  "add_collection_admin",
		Event:   "CollectionAdminAdded",
		Success: FirstFieldIsNonNegativeInteger,
	}

	RemoveCollectionAdmin = AdminCall{
		Name:    "unique.removeCollectionAdmin",
		Method:  "remove_collection_admin",
		Event:   "CollectionAdminRemoved",
		Success: FirstFieldIsNonNegativeInteger,
	}
)

// NewAddCollectionAdmin builds Unique.add_collection_admin(collectionId, newAdmin)
func NewAddCollectionAdmin(builder transaction.CallBuilder, node transaction.Node, params AddCollectionAdminParams, opts transaction.Options) (AddCollectionAdminTx, error) {
	return newAdminTx(AddCollectionAdmin, builder, node, params, params.CollectionID, params.NewAdminAddress, opts)
}

// NewRemoveCollectionAdmin builds Unique.remove_collection_admin(collectionId, admin)
func NewRemoveCollectionAdmin(builder transaction.CallBuilder, node transaction.Node, params RemoveCollectionAdminParams, opts transaction.Options) (RemoveCollectionAdminTx, error) {
	return newAdminTx(RemoveCollectionAdmin, builder, node, params, params.CollectionID, params.AdminAddress, opts)
}

func newAdminTx[P any](c AdminCall, builder transaction.CallBuilder, node transaction.Node, params P, collectionID models.CollectionID, address string, opts transaction.Options) (transaction.Transaction[P, AdminResult], error) {
	var tx transaction.Transaction[P, AdminResult]

	admin, err := utils.AddressToObject(address)
	if err != nil {
		return tx, err
	}

	call, err := builder.NewCall(Module, c.Method, collectionID, admin)
	if err != nil {
		return tx, errors.Wrapf(err, "build %s", c.Name)
	}

	return transaction.New[P, AdminResult](node, c.Name, call, params, c.extractor(collectionID, admin), opts), nil
}

func (c AdminCall) extractor(collectionID models.CollectionID, admin models.CrossAccountID) transaction.Extractor[AdminResult] {
	return func(status models.SubmittableResult, base models.ExtrinsicResult) AdminResult {
		return AdminResult{
			ExtrinsicResult: c.Extract(status, base),
			CollectionID:    collectionID,
			Admin:           admin,
		}
	}
}

// Extract sets IsSuccess from the marker event of the call
func (c AdminCall) Extract(status models.SubmittableResult, base models.ExtrinsicResult) models.ExtrinsicResult {
	success := c.Success
	if success == nil {
		success = FirstFieldIsNonNegativeInteger
	}
	data, ok := transaction.FindEventData(status.Events, Module, c.Event)
	base.IsSuccess = ok && success(data)
	return base
}
